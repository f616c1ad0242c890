package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/testutil"
)

func TestRequireTeamAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenDB(t)
	leader := testutil.CreateUser(t, db, "leader@example.com")
	outsider := testutil.CreateUser(t, db, "outsider@example.com")
	team := testutil.CreateTeam(t, db, "Zona 1", leader)

	teams := services.NewTeamService(repository.NewStore(db))

	serve := func(user *models.User, teamID string) int {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if user != nil {
				c.Set(constants.ContextKeyActor, services.Actor{UserID: user.ID, Email: user.Email})
			}
			c.Next()
		})
		r.GET("/api/teams/:id", RequireTeamAccess(teams), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teams/"+teamID, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, serve(leader, team.ID))
	assert.Equal(t, http.StatusNotFound, serve(outsider, team.ID))
	assert.Equal(t, http.StatusNotFound, serve(leader, "missing"))
	require.Equal(t, http.StatusUnauthorized, serve(nil, team.ID))
}
