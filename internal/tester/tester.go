package tester

import (
	"os"
	"path/filepath"

	"github.com/authorshaven/content/internal/cache"
	"github.com/authorshaven/content/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testPath string
	db       *gorm.DB
)

// Setup opens a fresh sqlite database for the calling test binary. Each
// test package gets its own directory so packages can run in parallel.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	if testPath == "" {
		dir, err := os.MkdirTemp("", "content-test-")
		if err != nil {
			panic(err)
		}
		testPath = dir
	}

	err := os.MkdirAll(filepath.Join(testPath, "db"), os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(filepath.Join(testPath, "db", "content.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	if testPath == "" {
		return
	}

	err := os.RemoveAll(filepath.Join(testPath, "db"))
	if err != nil {
		panic(err)
	}
}

func Cache() cache.ArticleCache {
	return cache.NewNoop()
}
