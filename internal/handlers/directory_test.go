package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/skawamoto/campusboard/internal/constants"
	"github.com/skawamoto/campusboard/internal/middleware"
	"github.com/skawamoto/campusboard/internal/models"
	"github.com/skawamoto/campusboard/internal/repository"
	"github.com/skawamoto/campusboard/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type directoryTestEnv struct {
	db     *gorm.DB
	router *gin.Engine

	identity *models.Identity
}

func setupDirectoryTestEnv(t *testing.T) *directoryTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	env := &directoryTestEnv{db: db}

	handler := NewDirectoryHandler(services.NewDirectoryService(repository.NewProfileRepository(db)))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.Use(func(c *gin.Context) {
		if env.identity != nil {
			middleware.SetIdentity(c, env.identity)
		}
		c.Next()
	})
	r.GET("/", handler.Index)
	r.GET("/add", handler.ShowAdd)
	r.POST("/add", handler.Add)
	r.GET("/delete", handler.ShowDelete)
	r.POST("/delete/:id", handler.Delete)
	r.GET("/find", handler.Find)

	env.router = r
	return env
}

func (env *directoryTestEnv) signIn() {
	env.identity = &models.Identity{ID: "user-1", DisplayName: "Test User"}
}

func (env *directoryTestEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	env.router.ServeHTTP(w, req)
	return w
}

func (env *directoryTestEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.router.ServeHTTP(w, req)
	return w
}

func (env *directoryTestEnv) createProfile(t *testing.T, name, mail string, dorm bool) *models.Profile {
	t.Helper()
	profile := &models.Profile{Name: name, Mail: mail, Dorm: dorm}
	require.NoError(t, env.db.Create(profile).Error)
	return profile
}

func TestDirectoryIndex_AnonymousGetsPrompt(t *testing.T) {
	env := setupDirectoryTestEnv(t)

	// Dropping the table proves anonymous visits never hit the store
	require.NoError(t, env.db.Migrator().DropTable(&models.Profile{}))

	w := env.get(t, "/")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Sign in to view the directory.")
}

func TestDirectoryIndex_ListsProfiles(t *testing.T) {
	env := setupDirectoryTestEnv(t)
	env.signIn()
	env.createProfile(t, "Aoi", "aoi@example.com", true)

	w := env.get(t, "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Aoi")
	require.Contains(t, body, "aoi@example.com")
	require.Contains(t, body, "resident")
}

func TestDirectoryAdd_CreatesProfile(t *testing.T) {
	env := setupDirectoryTestEnv(t)
	env.signIn()

	w := env.postForm(t, "/add", url.Values{
		"name": {"Aoi"},
		"mail": {"aoi@example.com"},
		"dorm": {"true"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	var profile models.Profile
	require.NoError(t, env.db.First(&profile).Error)
	require.Equal(t, "Aoi", profile.Name)
	require.Equal(t, "aoi@example.com", profile.Mail)
	require.True(t, profile.Dorm)
}

func TestDirectoryAdd_MissingFieldsRerenderSilently(t *testing.T) {
	env := setupDirectoryTestEnv(t)
	env.signIn()

	w := env.postForm(t, "/add", url.Values{
		"name": {""},
		"mail": {"aoi@example.com"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	// Buffers survive the re-render
	require.Contains(t, w.Body.String(), "aoi@example.com")

	var count int64
	require.NoError(t, env.db.Model(&models.Profile{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDirectoryDelete_RequiresConfirmation(t *testing.T) {
	env := setupDirectoryTestEnv(t)
	env.signIn()
	profile := env.createProfile(t, "Aoi", "aoi@example.com", false)

	w := env.postForm(t, "/delete/"+profile.ID, url.Values{})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Delete this user?")

	var count int64
	require.NoError(t, env.db.Model(&models.Profile{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDirectoryDelete_Confirmed(t *testing.T) {
	env := setupDirectoryTestEnv(t)
	env.signIn()
	keep := env.createProfile(t, "Keep", "keep@example.com", false)
	remove := env.createProfile(t, "Remove", "remove@example.com", true)

	w := env.postForm(t, "/delete/"+remove.ID, url.Values{
		"confirm": {"yes"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)

	var remaining []models.Profile
	require.NoError(t, env.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, keep.ID, remaining[0].ID)
}

func TestDirectoryFind_FiltersByKeyword(t *testing.T) {
	env := setupDirectoryTestEnv(t)
	env.signIn()
	env.createProfile(t, "Haruka", "haruka@example.com", false)
	env.createProfile(t, "Ren", "ren@example.com", true)

	w := env.get(t, "/find?q=HARU")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Haruka")
	require.NotContains(t, body, "ren@example.com")

	// Empty keyword returns the full snapshot
	w = env.get(t, "/find")
	body = w.Body.String()
	require.Contains(t, body, "Haruka")
	require.Contains(t, body, "ren@example.com")
}

func TestDirectoryPages_GatedForAnonymous(t *testing.T) {
	env := setupDirectoryTestEnv(t)

	for _, path := range []string{"/add", "/delete", "/find"} {
		w := env.get(t, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.Contains(t, w.Body.String(), "Please sign in to view this page.", path)
	}
}
