package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/skawamoto/campusboard/internal/constants"
	"github.com/skawamoto/campusboard/internal/middleware"
	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/repository"
	"github.com/skawamoto/campusboard/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TodoHandlerTestSuite defines the test suite for TodoHandler
type TodoHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TodoHandler
	router  *gin.Engine

	// identity is attached to every request when non-nil
	identity *models.Identity
}

// SetupTest runs before each test
func (suite *TodoHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.identity = nil
	suite.handler = NewTodoHandler(services.NewTodoService(repository.NewTaskRepository(suite.db)))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create router with sessions and a test identity injector
	suite.router = gin.New()
	suite.router.LoadHTMLGlob("../../web/templates/*.html")
	store := cookie.NewStore([]byte("secret"))
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, store))
	suite.router.Use(func(c *gin.Context) {
		if suite.identity != nil {
			middleware.SetIdentity(c, suite.identity)
		}
		c.Next()
	})
	suite.router.GET("/todo", suite.handler.Show)
	suite.router.POST("/todo", suite.handler.Save)
	suite.router.POST("/todo/:id/delete", suite.handler.Delete)
}

// TearDownTest runs after each test
func (suite *TodoHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TodoHandlerTestSuite) signIn(id string) {
	suite.identity = &models.Identity{ID: id, DisplayName: "Test User"}
}

func (suite *TodoHandlerTestSuite) createTestTask(ownerID, text string) *models.Task {
	task := &models.Task{
		OwnerID: ownerID,
		Text:    text,
	}
	suite.db.Create(task)
	return task
}

func (suite *TodoHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TodoHandlerTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TodoHandlerTestSuite) countTasks() int64 {
	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	return count
}

// TestShow_AnonymousGetsLoginPrompt verifies the login prompt replaces
// the page content and no task query runs for anonymous visitors.
func (suite *TodoHandlerTestSuite) TestShow_AnonymousGetsLoginPrompt() {
	// Dropping the table proves the handler never reaches the store
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.Task{}))

	w := suite.get("/todo")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Sign in")
	assert.NotContains(suite.T(), w.Body.String(), "ToDo list")
}

// TestShow_ListsOnlyOwnedTasks verifies the owner filter
func (suite *TodoHandlerTestSuite) TestShow_ListsOnlyOwnedTasks() {
	suite.signIn("owner-a")
	suite.createTestTask("owner-a", "mine")
	suite.createTestTask("owner-b", "someone elses")

	w := suite.get("/todo")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "mine")
	assert.NotContains(suite.T(), w.Body.String(), "someone elses")
}

// TestShow_EditPrefillsForm verifies BeginEdit copies the record into
// the form buffers
func (suite *TodoHandlerTestSuite) TestShow_EditPrefillsForm() {
	suite.signIn("owner-a")
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task := suite.createTestTask("owner-a", "edit me")
	suite.db.Model(task).Update("due_date", due)

	w := suite.get("/todo?edit=" + task.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(suite.T(), body, `value="edit me"`)
	assert.Contains(suite.T(), body, `value="2026-09-15"`)
	assert.Contains(suite.T(), body, task.ID)
	assert.Contains(suite.T(), body, "Update")
	assert.Contains(suite.T(), body, "Cancel")
}

// TestSave_CreatesTask verifies a submit without an edit target
// inserts a new owned record
func (suite *TodoHandlerTestSuite) TestSave_CreatesTask() {
	suite.signIn("owner-a")

	w := suite.postForm("/todo", url.Values{
		"text":     {"buy milk"},
		"due_date": {"2026-09-15"},
	})

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), "/todo", w.Header().Get("Location"))

	var task models.Task
	suite.Require().NoError(suite.db.First(&task).Error)
	assert.Equal(suite.T(), "buy milk", task.Text)
	assert.Equal(suite.T(), "owner-a", task.OwnerID)
	assert.False(suite.T(), task.Completed)
	suite.Require().NotNil(task.DueDate)
	assert.Equal(suite.T(), "2026-09-15", task.DueDate.Format("2006-01-02"))
}

// TestSave_EmptyTextDoesNothing verifies the silent validation block
func (suite *TodoHandlerTestSuite) TestSave_EmptyTextDoesNothing() {
	suite.signIn("owner-a")

	w := suite.postForm("/todo", url.Values{
		"text":     {"   "},
		"due_date": {"2026-09-15"},
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), int64(0), suite.countTasks())
	// Buffers stay intact on the re-rendered form
	assert.Contains(suite.T(), w.Body.String(), `value="2026-09-15"`)
}

// TestSave_AnonymousIsRejected verifies the identity precondition
func (suite *TodoHandlerTestSuite) TestSave_AnonymousIsRejected() {
	w := suite.postForm("/todo", url.Values{
		"text": {"buy milk"},
	})

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), int64(0), suite.countTasks())
}

// TestSave_EditUpdatesContentOnly verifies owner and creation
// timestamp survive an edit
func (suite *TodoHandlerTestSuite) TestSave_EditUpdatesContentOnly() {
	suite.signIn("owner-a")
	task := suite.createTestTask("owner-a", "before")
	created := task.CreatedAt

	w := suite.postForm("/todo", url.Values{
		"text":     {"after"},
		"due_date": {"2026-10-01"},
		"edit_id":  {task.ID},
	})

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), int64(1), suite.countTasks())

	var reread models.Task
	suite.Require().NoError(suite.db.First(&reread, "id = ?", task.ID).Error)
	assert.Equal(suite.T(), "after", reread.Text)
	assert.Equal(suite.T(), "owner-a", reread.OwnerID)
	assert.WithinDuration(suite.T(), created, reread.CreatedAt, time.Second)
}

// TestDelete_WithoutConfirmationShowsConfirmPage verifies the
// destructive-action guard
func (suite *TodoHandlerTestSuite) TestDelete_WithoutConfirmationShowsConfirmPage() {
	suite.signIn("owner-a")
	task := suite.createTestTask("owner-a", "still here")

	w := suite.postForm("/todo/"+task.ID+"/delete", url.Values{})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Delete this task?")
	assert.Equal(suite.T(), int64(1), suite.countTasks())
}

// TestDelete_Confirmed verifies only the targeted record is removed
func (suite *TodoHandlerTestSuite) TestDelete_Confirmed() {
	suite.signIn("owner-a")
	keep := suite.createTestTask("owner-a", "keep")
	remove := suite.createTestTask("owner-a", "remove")

	w := suite.postForm("/todo/"+remove.ID+"/delete", url.Values{
		"confirm": {"yes"},
	})

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)

	var remaining []models.Task
	suite.Require().NoError(suite.db.Find(&remaining).Error)
	suite.Require().Len(remaining, 1)
	assert.Equal(suite.T(), keep.ID, remaining[0].ID)
}

// TestDelete_ForeignTaskIsRejected verifies the owner check on delete
func (suite *TodoHandlerTestSuite) TestDelete_ForeignTaskIsRejected() {
	suite.signIn("owner-a")
	task := suite.createTestTask("owner-b", "not yours")

	w := suite.postForm("/todo/"+task.ID+"/delete", url.Values{
		"confirm": {"yes"},
	})

	assert.Equal(suite.T(), http.StatusSeeOther, w.Code)
	assert.Equal(suite.T(), int64(1), suite.countTasks())
}

// TestTodoHandlerTestSuite runs the test suite
func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}
