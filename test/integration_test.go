package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"review-catalogue-api/config"
	"review-catalogue-api/handlers"
	"review-catalogue-api/helper"
	"review-catalogue-api/middleware"
	"review-catalogue-api/models"
	"review-catalogue-api/repositories"
	"review-catalogue-api/services"
)

// captureMailer records the last message instead of delivering it, so the
// tests can fish the confirmation code out of the body.
type captureMailer struct {
	LastTo   string
	LastBody string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.LastTo = to
	m.LastBody = body
	return nil
}

func (m *captureMailer) Code() string {
	_, code, _ := strings.Cut(m.LastBody, ": ")
	return code
}

type IntegrationTestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	mailer   *captureMailer
	userRepo repositories.UserRepository
}

func (suite *IntegrationTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{TranslateError: true})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		suite.T().Fatal("Failed to get database handle:", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.db = db
	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	userRepo := repositories.NewUserRepository(suite.db)
	categoryRepo := repositories.NewCategoryRepository(suite.db)
	genreRepo := repositories.NewGenreRepository(suite.db)
	titleRepo := repositories.NewTitleRepository(suite.db)
	reviewRepo := repositories.NewReviewRepository(suite.db)
	commentRepo := repositories.NewCommentRepository(suite.db)
	suite.userRepo = userRepo

	httpHelper := helper.NewHTTPHelper()
	suite.mailer = &captureMailer{}
	codes := services.NewConfirmationCodes(config.JWTSecret, config.ConfirmationCodeTTL)
	authService := services.NewAuthService(userRepo, suite.mailer, codes)
	userService := services.NewUserService(userRepo)
	catalogueService := services.NewCatalogueService(categoryRepo, genreRepo)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := services.NewReviewService(reviewRepo, commentRepo, titleRepo)

	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	catalogueHandler := handlers.NewCatalogueHandler(catalogueService, httpHelper)
	titleHandler := handlers.NewTitleHandler(titleService, httpHelper)
	reviewHandler := handlers.NewReviewHandler(reviewService, httpHelper)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identify())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/token", authHandler.ObtainToken)
		}

		me := v1.Group("/users/me")
		me.Use(middleware.RequireAuthenticated())
		{
			me.GET("", userHandler.GetProfile)
			me.PATCH("", userHandler.UpdateProfile)
		}

		users := v1.Group("/users")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:username", userHandler.GetUser)
			users.PATCH("/:username", userHandler.UpdateUser)
			users.DELETE("/:username", userHandler.DeleteUser)
		}

		categories := v1.Group("/categories")
		categories.Use(middleware.AdminOrReadOnly())
		{
			categories.GET("", catalogueHandler.GetCategories)
			categories.POST("", catalogueHandler.CreateCategory)
			categories.DELETE("/:slug", catalogueHandler.DeleteCategory)
		}

		genres := v1.Group("/genres")
		genres.Use(middleware.AdminOrReadOnly())
		{
			genres.GET("", catalogueHandler.GetGenres)
			genres.POST("", catalogueHandler.CreateGenre)
			genres.DELETE("/:slug", catalogueHandler.DeleteGenre)
		}

		titles := v1.Group("/titles")
		titles.Use(middleware.AdminOrReadOnly())
		{
			titles.GET("", titleHandler.GetTitles)
			titles.POST("", titleHandler.CreateTitle)
			titles.GET("/:title_id", titleHandler.GetTitle)
			titles.PATCH("/:title_id", titleHandler.UpdateTitle)
			titles.DELETE("/:title_id", titleHandler.DeleteTitle)
		}

		reviews := v1.Group("/titles/:title_id/reviews")
		reviews.Use(middleware.AuthenticatedOrReadOnly())
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("/:review_id", reviewHandler.GetReview)
			reviews.PATCH("/:review_id", reviewHandler.UpdateReview)
			reviews.DELETE("/:review_id", reviewHandler.DeleteReview)

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", reviewHandler.GetComments)
				comments.POST("", reviewHandler.CreateComment)
				comments.GET("/:comment_id", reviewHandler.GetComment)
				comments.PATCH("/:comment_id", reviewHandler.UpdateComment)
				comments.DELETE("/:comment_id", reviewHandler.DeleteComment)
			}
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM comments")
	suite.db.Exec("DELETE FROM reviews")
	suite.db.Exec("DELETE FROM title_genres")
	suite.db.Exec("DELETE FROM titles")
	suite.db.Exec("DELETE FROM genres")
	suite.db.Exec("DELETE FROM categories")
	suite.db.Exec("DELETE FROM users")
	suite.mailer.LastTo = ""
	suite.mailer.LastBody = ""
}

func (suite *IntegrationTestSuite) createUser(username, email string, role models.UserRole) *models.User {
	user := &models.User{
		Username:           username,
		Email:              email,
		Role:               role,
		ConfirmationSecret: username + "-secret",
	}
	suite.Require().NoError(suite.userRepo.Create(user))
	return user
}

func (suite *IntegrationTestSuite) tokenFor(user *models.User) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(time.Hour).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret)
	suite.Require().NoError(err)
	return token
}

func (suite *IntegrationTestSuite) do(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (suite *IntegrationTestSuite) TestSignupAndTokenFlow() {
	w := suite.do("POST", "/api/v1/auth/signup", "", gin.H{
		"email":    "newbie@example.com",
		"username": "newbie",
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("newbie@example.com", suite.mailer.LastTo)

	code := suite.mailer.Code()
	suite.NotEmpty(code)

	w = suite.do("POST", "/api/v1/auth/token", "", gin.H{
		"username":          "newbie",
		"confirmation_code": code,
	})
	suite.Equal(http.StatusOK, w.Code)

	var tokenResp models.TokenResponse
	suite.decode(w, &tokenResp)
	suite.NotEmpty(tokenResp.Token)

	w = suite.do("GET", "/api/v1/users/me", tokenResp.Token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var profile models.User
	suite.decode(w, &profile)
	suite.Equal("newbie", profile.Username)
	suite.Equal(models.RoleUser, profile.Role)
}

func (suite *IntegrationTestSuite) TestSignupReservedUsername() {
	w := suite.do("POST", "/api/v1/auth/signup", "", gin.H{
		"email":    "me@example.com",
		"username": "me",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *IntegrationTestSuite) TestSignupIdentityCollisions() {
	w := suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "alice@example.com", "username": "alice"})
	suite.Equal(http.StatusOK, w.Code)

	// Same pair again: code is re-issued, no conflict.
	w = suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "alice@example.com", "username": "alice"})
	suite.Equal(http.StatusOK, w.Code)

	// Username taken by a different email.
	w = suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "other@example.com", "username": "alice"})
	suite.Equal(http.StatusConflict, w.Code)

	// Email taken by a different username.
	w = suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "alice@example.com", "username": "alice2"})
	suite.Equal(http.StatusConflict, w.Code)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *IntegrationTestSuite) TestTokenErrors() {
	w := suite.do("POST", "/api/v1/auth/token", "", gin.H{
		"username":          "ghost",
		"confirmation_code": "deadbeef-0123456789",
	})
	suite.Equal(http.StatusNotFound, w.Code)

	suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "bob@example.com", "username": "bob"})
	w = suite.do("POST", "/api/v1/auth/token", "", gin.H{
		"username":          "bob",
		"confirmation_code": "deadbeef-0123456789",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestConfirmationCodeInvalidatedByProfileChange() {
	suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "carol@example.com", "username": "carol"})
	code := suite.mailer.Code()

	w := suite.do("POST", "/api/v1/auth/token", "", gin.H{"username": "carol", "confirmation_code": code})
	suite.Equal(http.StatusOK, w.Code)

	var tokenResp models.TokenResponse
	suite.decode(w, &tokenResp)

	// Mutating the user invalidates the previously issued code.
	time.Sleep(10 * time.Millisecond)
	w = suite.do("PATCH", "/api/v1/users/me", tokenResp.Token, gin.H{"bio": "updated"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("POST", "/api/v1/auth/token", "", gin.H{"username": "carol", "confirmation_code": code})
	suite.Equal(http.StatusBadRequest, w.Code)

	// A freshly requested code works again.
	suite.do("POST", "/api/v1/auth/signup", "", gin.H{"email": "carol@example.com", "username": "carol"})
	w = suite.do("POST", "/api/v1/auth/token", "", gin.H{"username": "carol", "confirmation_code": suite.mailer.Code()})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestProfileRoleImmutable() {
	user := suite.createUser("dave", "dave@example.com", models.RoleUser)
	token := suite.tokenFor(user)

	w := suite.do("PATCH", "/api/v1/users/me", token, gin.H{
		"bio":  "humble user",
		"role": "admin",
	})
	suite.Equal(http.StatusOK, w.Code)

	var profile models.User
	suite.decode(w, &profile)
	suite.Equal(models.RoleUser, profile.Role)
	suite.Equal("humble user", profile.Bio)

	w = suite.do("GET", "/api/v1/users/me", token, nil)
	suite.decode(w, &profile)
	suite.Equal(models.RoleUser, profile.Role)
}

func (suite *IntegrationTestSuite) TestUserAdminEndpoints() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	plain := suite.createUser("pleb", "pleb@example.com", models.RoleUser)
	adminToken := suite.tokenFor(admin)
	plainToken := suite.tokenFor(plain)

	// Non-admins are shut out of user administration.
	w := suite.do("GET", "/api/v1/users", plainToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	w = suite.do("GET", "/api/v1/users", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do("POST", "/api/v1/users", adminToken, gin.H{
		"username": "mod",
		"email":    "mod@example.com",
		"role":     "moderator",
	})
	suite.Equal(http.StatusCreated, w.Code)

	var created models.User
	suite.decode(w, &created)
	suite.Equal(models.RoleModerator, created.Role)

	w = suite.do("GET", "/api/v1/users/mod", adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	// Admin may change another user's role.
	w = suite.do("PATCH", "/api/v1/users/pleb", adminToken, gin.H{"role": "moderator"})
	suite.Equal(http.StatusOK, w.Code)
	var updated models.User
	suite.decode(w, &updated)
	suite.Equal(models.RoleModerator, updated.Role)

	w = suite.do("DELETE", "/api/v1/users/mod", adminToken, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	w = suite.do("GET", "/api/v1/users/mod", adminToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestCatalogueAdminGate() {
	plain := suite.createUser("viewer", "viewer@example.com", models.RoleUser)

	// Reads are public.
	w := suite.do("GET", "/api/v1/categories", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	w = suite.do("GET", "/api/v1/genres", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	w = suite.do("GET", "/api/v1/titles", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	// Writes are not.
	w = suite.do("POST", "/api/v1/categories", "", gin.H{"name": "Movies", "slug": "movies"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	w = suite.do("POST", "/api/v1/categories", suite.tokenFor(plain), gin.H{"name": "Movies", "slug": "movies"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestCategoryLifecycle() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	token := suite.tokenFor(admin)

	w := suite.do("POST", "/api/v1/categories", token, gin.H{"name": "Science Fiction", "slug": "sci-fi"})
	suite.Equal(http.StatusCreated, w.Code)

	// Duplicate slug is a conflict.
	w = suite.do("POST", "/api/v1/categories", token, gin.H{"name": "Dup", "slug": "sci-fi"})
	suite.Equal(http.StatusConflict, w.Code)

	// Bad slug charset is a validation error.
	w = suite.do("POST", "/api/v1/categories", token, gin.H{"name": "Bad", "slug": "no spaces"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do("DELETE", "/api/v1/categories/nope", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("DELETE", "/api/v1/categories/sci-fi", token, nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *IntegrationTestSuite) TestTitleCreateValidation() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	token := suite.tokenFor(admin)

	w := suite.do("POST", "/api/v1/titles", token, gin.H{
		"name": "From the Future",
		"year": time.Now().Year() + 1,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// Unknown category slug aborts the create; nothing is persisted.
	w = suite.do("POST", "/api/v1/titles", token, gin.H{
		"name":     "Dune",
		"year":     1965,
		"category": "sci-fi",
	})
	suite.Equal(http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Title{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *IntegrationTestSuite) TestRatingAggregation() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	userA := suite.createUser("usera", "a@example.com", models.RoleUser)
	userB := suite.createUser("userb", "b@example.com", models.RoleUser)
	adminToken := suite.tokenFor(admin)

	suite.do("POST", "/api/v1/categories", adminToken, gin.H{"name": "Science Fiction", "slug": "sci-fi"})
	suite.do("POST", "/api/v1/genres", adminToken, gin.H{"name": "SF", "slug": "sf"})

	w := suite.do("POST", "/api/v1/titles", adminToken, gin.H{
		"name":     "Dune",
		"year":     1965,
		"category": "sci-fi",
		"genre":    []string{"sf"},
	})
	suite.Equal(http.StatusCreated, w.Code)

	var title models.Title
	suite.decode(w, &title)
	suite.Nil(title.Rating)
	suite.Require().NotNil(title.Category)
	suite.Equal("sci-fi", title.Category.Slug)

	reviewsPath := "/api/v1/titles/" + itoa(title.ID) + "/reviews"
	titlePath := "/api/v1/titles/" + itoa(title.ID)

	w = suite.do("POST", reviewsPath, suite.tokenFor(userA), gin.H{"text": "great", "score": 8})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do("GET", titlePath, "", nil)
	suite.decode(w, &title)
	suite.Require().NotNil(title.Rating)
	suite.Equal(8, *title.Rating)

	w = suite.do("POST", reviewsPath, suite.tokenFor(userB), gin.H{"text": "ok", "score": 5})
	suite.Equal(http.StatusCreated, w.Code)

	// floor(6.5) == 6
	w = suite.do("GET", titlePath, "", nil)
	suite.decode(w, &title)
	suite.Require().NotNil(title.Rating)
	suite.Equal(6, *title.Rating)

	// A second review from the same author is a conflict and leaves the
	// rating untouched.
	w = suite.do("POST", reviewsPath, suite.tokenFor(userA), gin.H{"text": "again", "score": 10})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do("GET", titlePath, "", nil)
	suite.decode(w, &title)
	suite.Equal(6, *title.Rating)

	var count int64
	suite.db.Model(&models.Review{}).Count(&count)
	suite.Equal(int64(2), count)
}

func (suite *IntegrationTestSuite) TestReviewScoreBounds() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	user := suite.createUser("scorer", "scorer@example.com", models.RoleUser)

	w := suite.do("POST", "/api/v1/titles", suite.tokenFor(admin), gin.H{"name": "Solaris", "year": 1961})
	var title models.Title
	suite.decode(w, &title)

	path := "/api/v1/titles/" + itoa(title.ID) + "/reviews"
	token := suite.tokenFor(user)

	w = suite.do("POST", path, token, gin.H{"text": "x", "score": 0})
	suite.Equal(http.StatusBadRequest, w.Code)
	w = suite.do("POST", path, token, gin.H{"text": "x", "score": 11})
	suite.Equal(http.StatusBadRequest, w.Code)
	w = suite.do("POST", path, token, gin.H{"text": "x", "score": 10})
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *IntegrationTestSuite) TestReviewObjectPermissions() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	author := suite.createUser("author", "author@example.com", models.RoleUser)
	stranger := suite.createUser("stranger", "stranger@example.com", models.RoleUser)
	moderator := suite.createUser("mod", "mod@example.com", models.RoleModerator)

	w := suite.do("POST", "/api/v1/titles", suite.tokenFor(admin), gin.H{"name": "Dune", "year": 1965})
	var title models.Title
	suite.decode(w, &title)

	reviewsPath := "/api/v1/titles/" + itoa(title.ID) + "/reviews"
	w = suite.do("POST", reviewsPath, suite.tokenFor(author), gin.H{"text": "mine", "score": 7})
	suite.Equal(http.StatusCreated, w.Code)

	var review models.Review
	suite.decode(w, &review)
	suite.Equal("author", review.AuthorUsername)

	reviewPath := reviewsPath + "/" + itoa(review.ID)

	// Anonymous reads succeed.
	w = suite.do("GET", reviewPath, "", nil)
	suite.Equal(http.StatusOK, w.Code)
	w = suite.do("GET", reviewsPath, "", nil)
	suite.Equal(http.StatusOK, w.Code)

	// Anonymous writes are rejected at the collection gate.
	w = suite.do("POST", reviewsPath, "", gin.H{"text": "anon", "score": 5})
	suite.Equal(http.StatusUnauthorized, w.Code)

	// A non-author plain user may not touch someone else's review.
	w = suite.do("PATCH", reviewPath, suite.tokenFor(stranger), gin.H{"text": "hijack"})
	suite.Equal(http.StatusForbidden, w.Code)
	w = suite.do("DELETE", reviewPath, suite.tokenFor(stranger), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	// The author may update their own review.
	w = suite.do("PATCH", reviewPath, suite.tokenFor(author), gin.H{"score": 9})
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &review)
	suite.Equal(9, review.Score)

	// A moderator may delete it.
	w = suite.do("DELETE", reviewPath, suite.tokenFor(moderator), nil)
	suite.Equal(http.StatusNoContent, w.Code)
	w = suite.do("GET", reviewPath, "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestCommentsLifecycle() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	author := suite.createUser("author", "author@example.com", models.RoleUser)
	commenter := suite.createUser("commenter", "commenter@example.com", models.RoleUser)

	w := suite.do("POST", "/api/v1/titles", suite.tokenFor(admin), gin.H{"name": "Dune", "year": 1965})
	var title models.Title
	suite.decode(w, &title)

	w = suite.do("POST", "/api/v1/titles/"+itoa(title.ID)+"/reviews", suite.tokenFor(author), gin.H{"text": "mine", "score": 7})
	var review models.Review
	suite.decode(w, &review)

	commentsPath := "/api/v1/titles/" + itoa(title.ID) + "/reviews/" + itoa(review.ID) + "/comments"

	// No uniqueness constraint on comments.
	w = suite.do("POST", commentsPath, suite.tokenFor(commenter), gin.H{"text": "first"})
	suite.Equal(http.StatusCreated, w.Code)
	w = suite.do("POST", commentsPath, suite.tokenFor(commenter), gin.H{"text": "second"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do("GET", commentsPath, "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var listing struct {
		Results []models.Comment `json:"results"`
	}
	suite.decode(w, &listing)
	suite.Require().Len(listing.Results, 2)
	suite.Equal("first", listing.Results[0].Text)
	suite.Equal("second", listing.Results[1].Text)

	// Unknown parent review is a 404 before any policy check.
	w = suite.do("GET", "/api/v1/titles/"+itoa(title.ID)+"/reviews/99999/comments", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestTitleDeleteCascades() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	author := suite.createUser("author", "author@example.com", models.RoleUser)
	adminToken := suite.tokenFor(admin)

	w := suite.do("POST", "/api/v1/titles", adminToken, gin.H{"name": "Dune", "year": 1965})
	var title models.Title
	suite.decode(w, &title)

	w = suite.do("POST", "/api/v1/titles/"+itoa(title.ID)+"/reviews", suite.tokenFor(author), gin.H{"text": "r", "score": 8})
	var review models.Review
	suite.decode(w, &review)

	w = suite.do("POST", "/api/v1/titles/"+itoa(title.ID)+"/reviews/"+itoa(review.ID)+"/comments", suite.tokenFor(author), gin.H{"text": "c"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do("DELETE", "/api/v1/titles/"+itoa(title.ID), adminToken, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	var reviews, comments int64
	suite.db.Model(&models.Review{}).Count(&reviews)
	suite.db.Model(&models.Comment{}).Count(&comments)
	suite.Equal(int64(0), reviews)
	suite.Equal(int64(0), comments)
}

func (suite *IntegrationTestSuite) TestTitleFilters() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	token := suite.tokenFor(admin)

	suite.do("POST", "/api/v1/categories", token, gin.H{"name": "Movies", "slug": "movies"})
	suite.do("POST", "/api/v1/genres", token, gin.H{"name": "SF", "slug": "sf"})
	suite.do("POST", "/api/v1/genres", token, gin.H{"name": "Drama", "slug": "drama"})

	suite.do("POST", "/api/v1/titles", token, gin.H{"name": "Dune", "year": 1965, "category": "movies", "genre": []string{"sf"}})
	suite.do("POST", "/api/v1/titles", token, gin.H{"name": "Solaris", "year": 1961, "genre": []string{"sf", "drama"}})
	suite.do("POST", "/api/v1/titles", token, gin.H{"name": "Dune Messiah", "year": 1969})

	var listing struct {
		Results []models.Title `json:"results"`
	}

	w := suite.do("GET", "/api/v1/titles?name=dune", "", nil)
	suite.decode(w, &listing)
	suite.Len(listing.Results, 2)

	w = suite.do("GET", "/api/v1/titles?year=1961", "", nil)
	suite.decode(w, &listing)
	suite.Require().Len(listing.Results, 1)
	suite.Equal("Solaris", listing.Results[0].Name)

	w = suite.do("GET", "/api/v1/titles?category=movies", "", nil)
	suite.decode(w, &listing)
	suite.Require().Len(listing.Results, 1)
	suite.Equal("Dune", listing.Results[0].Name)

	w = suite.do("GET", "/api/v1/titles?genre=sf", "", nil)
	suite.decode(w, &listing)
	suite.Len(listing.Results, 2)
}

func (suite *IntegrationTestSuite) TestCategoryDeleteNullsTitleCategory() {
	admin := suite.createUser("root", "root@example.com", models.RoleAdmin)
	token := suite.tokenFor(admin)

	suite.do("POST", "/api/v1/categories", token, gin.H{"name": "Movies", "slug": "movies"})
	w := suite.do("POST", "/api/v1/titles", token, gin.H{"name": "Dune", "year": 1965, "category": "movies"})
	var title models.Title
	suite.decode(w, &title)
	suite.Require().NotNil(title.Category)

	w = suite.do("DELETE", "/api/v1/categories/movies", token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	// The title survives with its category nulled, never cascaded.
	w = suite.do("GET", "/api/v1/titles/"+itoa(title.ID), "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &title)
	suite.Nil(title.Category)
}

func (suite *IntegrationTestSuite) TestMethodNotAllowed() {
	w := suite.do("PUT", "/api/v1/titles", "", gin.H{})
	suite.Equal(http.StatusMethodNotAllowed, w.Code)

	w = suite.do("PUT", "/api/v1/users/me", "", gin.H{})
	suite.Equal(http.StatusMethodNotAllowed, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
