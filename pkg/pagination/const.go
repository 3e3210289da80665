package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 50

// PageMaxSize is the maximum allowed page size
const PageMaxSize = 200

// PageMaxNumber bounds the page number so the offset always fits in an int.
const PageMaxNumber = 1_000_000
