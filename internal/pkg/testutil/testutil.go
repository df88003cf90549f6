package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/inventory"
	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/domain/purchaseorder"
	"github.com/your-org/autoshop-backend/internal/domain/supplier"
	"github.com/your-org/autoshop-backend/internal/pkg/auth"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_autoshop"
	JWTSecret  = "autoshop-test-jwt-secret-key-32chars!"
)

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// TestConfig returns a config suitable for tests without touching the
// environment-driven loader.
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.JWT.Secret = JWTSecret
	cfg.JWT.TokenExpiry = 24 * time.Hour
	cfg.Inventory.DefaultReorderPoint = 10
	cfg.Inventory.DefaultReorderQuantity = 50
	cfg.Inventory.DefaultMaxStockLevel = 200
	cfg.Inventory.DefaultCurrency = "USD"
	return cfg
}

// SetupTestDB creates a database connection using an isolated schema that is
// dropped after the test. Tests that need Postgres skip when it is not
// reachable, so the pure-logic suite still runs everywhere.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "autoshop_user")
	password := getEnv("DB_PASSWORD", "autoshop_password")
	dbname := getEnv("DB_NAME", "autoshop_db")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("Postgres not reachable, skipping database test: %v", err)
	}
	if err := setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName)).Error; err != nil {
		t.Skipf("Postgres not usable, skipping database test: %v", err)
	}
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&supplier.Supplier{},
		&part.Part{},
		&inventory.InventoryTransaction{},
		&purchaseorder.PurchaseOrder{},
		&purchaseorder.PurchaseOrderItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// TestToken creates a valid bearer token for the given actor
func TestToken(t *testing.T, actorID uint, name, role string) string {
	t.Helper()
	manager := auth.NewJWTManager(TestConfig())
	token, err := manager.GenerateToken(actorID, name, role)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON envelope into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedSupplier creates a supplier fixture
func SeedSupplier(t *testing.T, db *gorm.DB, companyName string) *supplier.Supplier {
	t.Helper()
	sup := &supplier.Supplier{
		CompanyName:  companyName,
		PaymentTerms: "net_30",
		IsActive:     true,
	}
	if err := db.Create(sup).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	return sup
}

// SeedPart creates a part fixture with the given stock level
func SeedPart(t *testing.T, db *gorm.DB, partNumber string, onHand int) *part.Part {
	t.Helper()
	p := &part.Part{
		PartNumber:      partNumber,
		Name:            "Test Part " + partNumber,
		Category:        part.CategoryBrakes,
		CostPrice:       1000,
		SellPrice:       2500,
		Currency:        "USD",
		QuantityOnHand:  onHand,
		ReorderPoint:    5,
		ReorderQuantity: 20,
		MaxStockLevel:   100,
		IsActive:        true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed part: %v", err)
	}
	return p
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
