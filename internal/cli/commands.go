package cli

import (
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [source]",
		Short: "Fetch new articles from every source or a single one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}

			var report *domain.RefreshReport
			if len(args) == 1 {
				report, err = t.FetchOne(cmd.Context(), args[0])
			} else {
				report, err = t.FetchAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}
}

func newArticlesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"a"},
		Short:   "Browse stored articles",
	}

	var (
		filter domain.ArticleFilter
		source string
		page   pagination.OffsetRequest
	)
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List articles, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}
			filter.Source = domain.Source(source)
			res, err := t.ListArticles(cmd.Context(), filter, page)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	list.Flags().StringVar(&source, "source", "", "only this source")
	list.Flags().StringVar(&filter.Category, "category", "", "only this category")
	list.Flags().IntVar(&filter.Days, "days", 0, "published within the last N days")
	list.Flags().BoolVar(&filter.BookmarkedOnly, "bookmarked", false, "bookmarked articles only")
	list.Flags().IntVar(&page.Page, "page", 1, "page number")
	list.Flags().IntVar(&page.Size, "size", pagination.PageDefaultSize, "page size")

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over stored articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}
			hits, err := t.SearchArticles(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, hits)
		},
	}
	search.Flags().IntVar(&limit, "limit", 0, "max hits (default 50)")

	cmd.AddCommand(list, search)
	return cmd
}

func newSummarizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <article-id>",
		Short: "Summarize an article with the language model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}
			res, err := t.Summarize(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func newBookmarkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Add or remove article bookmarks",
	}

	toggle := func(use, short string, add bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <article-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				t, err := a.get(cmd.Context())
				if err != nil {
					return err
				}
				var article *domain.Article
				if add {
					article, err = t.AddBookmark(cmd.Context(), id)
				} else {
					article, err = t.RemoveBookmark(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, article)
			},
		}
	}

	cmd.AddCommand(
		toggle("add", "Bookmark an article", true),
		toggle("remove", "Remove a bookmark", false),
	)
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Categories in use with their article counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}
			counts, err := t.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, counts)
		},
	}
}

func newResearchCmd(a *app) *cobra.Command {
	var (
		tools      []string
		maxResults int
	)
	cmd := &cobra.Command{
		Use:   "research <query>",
		Short: "Run the research agent",
		Long: `Without --tools the language model picks the tools and writes a synthesis.
With --tools exactly those tools run and no synthesis is produced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := t.ResearchSearch(cmd.Context(), args[0], tools, maxResults)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringSliceVar(&tools, "tools", nil, "comma separated tool names")
	cmd.Flags().IntVar(&maxResults, "max", 0, "max results per tool")
	return cmd
}

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List research tools and whether they are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, t.ListResearchTools())
		},
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NewValidation("invalid article id: " + raw)
	}
	return id, nil
}
