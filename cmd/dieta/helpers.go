package dieta

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/imperador1k/dieta/internal/app"
	"github.com/imperador1k/dieta/internal/db"
	"github.com/imperador1k/dieta/internal/provider/usda"
	"github.com/imperador1k/dieta/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	logger.Debug("database ready", zap.String("path", path))
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func usdaClient() *usda.Client {
	return &usda.Client{
		APIKey:  strings.TrimSpace(os.Getenv("USDA_API_KEY")),
		BaseURL: strings.TrimSpace(os.Getenv("USDA_BASE_URL")),
		Logger:  logger.Named("usda"),
	}
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// optionalFloat returns nil for negative sentinels so flags can stay unset.
func optionalFloat(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func formatTotals(t service.Totals) string {
	return fmt.Sprintf("%.0f kcal | P %.1fg | C %.1fg | F %.1fg", t.Calories, t.Protein, t.Carbs, t.Fat)
}

func eatenMark(eaten bool) string {
	if eaten {
		return "x"
	}
	return " "
}
