package http_swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type SwaggerSuite struct {
	suite.Suite

	router *gin.Engine
}

func (s *SwaggerSuite) BeforeEach(t provider.T) {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	New().RegisterRoutes(s.router.Group(""))
}

func (s *SwaggerSuite) TestDoc(t provider.T) {
	t.Run("Should serve the api description", func(t provider.T) {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"/update-vote"`)
		assert.Contains(t, w.Body.String(), "flickpicker API")
	})
}

func TestSwaggerSuite(t *testing.T) {
	suite.RunSuite(t, new(SwaggerSuite))
}
