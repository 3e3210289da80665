package env

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"github.com/joho/godotenv"
)

// Local is the ENV value of a developer machine. An empty ENV counts as local.
const Local = "local"

func IsLocal(env string) bool {
	return env == "" || strings.EqualFold(env, Local)
}

// LoadDotEnv loads the files listed in ENV_PATH, comma separated, or
// defaultPath when ENV_PATH is unset. Variables already present in the
// process are never overwritten. Locally a missing file is an error;
// elsewhere it is skipped and configuration comes from the environment.
func LoadDotEnv(env string, defaultPath string) error {
	paths := stringsutil.SplitList(os.Getenv("ENV_PATH"))
	if len(paths) == 0 {
		paths = []string{defaultPath}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if IsLocal(env) {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			slog.Debug("Skipping env file", "path", path, "env", env)
			continue
		}
		slog.Info("Loaded env file", "path", path)
	}
	return nil
}
