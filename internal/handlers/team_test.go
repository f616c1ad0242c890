package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/dto"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type teamTestEnv struct {
	db          *gorm.DB
	handler     *TeamHandler
	rpcHandler  *RPCHandler
	teamService *services.TeamService
}

func setupTeamTestEnv(t *testing.T) teamTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	store := repository.NewStore(db)
	teamService := services.NewTeamService(store)
	taskService := services.NewTaskService(store, nil, zap.NewNop())

	return teamTestEnv{
		db:          db,
		handler:     NewTeamHandler(teamService),
		rpcHandler:  NewRPCHandler(teamService, taskService, nil),
		teamService: teamService,
	}
}

func teamTestContext(t *testing.T, method, url string, payload interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyActor, services.Actor{UserID: user.ID, Email: user.Email})

	return c, w
}

func TestRPCHandler_CreateTeam(t *testing.T) {
	env := setupTeamTestEnv(t)
	user := testutil.CreateUser(t, env.db, "leader@example.com")

	c, w := teamTestContext(t, http.MethodPost, "/api/rpc/create_team", map[string]string{
		"p_name":     "Zona 1",
		"p_password": "abcd",
	}, user)

	env.rpcHandler.CreateTeam(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.TeamWithRoleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Zona 1", response.Name)
	require.Equal(t, models.RoleLeader, response.Role)
	require.NotContains(t, w.Body.String(), "password")
}

func TestRPCHandler_CreateTeam_ShortPassword(t *testing.T) {
	env := setupTeamTestEnv(t)
	user := testutil.CreateUser(t, env.db, "leader@example.com")

	c, w := teamTestContext(t, http.MethodPost, "/api/rpc/create_team", map[string]string{
		"p_name":     "Zona 1",
		"p_password": "abc",
	}, user)

	env.rpcHandler.CreateTeam(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRPCHandler_JoinTeam(t *testing.T) {
	env := setupTeamTestEnv(t)
	leader := testutil.CreateUser(t, env.db, "leader@example.com")
	advisor := testutil.CreateUser(t, env.db, "advisor@example.com")
	testutil.CreateTeam(t, env.db, "Zona 1", leader)

	c, w := teamTestContext(t, http.MethodPost, "/api/rpc/join_team", map[string]string{
		"p_name":     "Zona 1",
		"p_password": "secret",
	}, advisor)
	env.rpcHandler.JoinTeam(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.TeamWithRoleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.RoleAdvisor, response.Role)

	c, w = teamTestContext(t, http.MethodPost, "/api/rpc/join_team", map[string]string{
		"p_name":     "Zona 1",
		"p_password": "secret",
	}, advisor)
	env.rpcHandler.JoinTeam(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRPCHandler_JoinTeam_InvalidCredentials(t *testing.T) {
	env := setupTeamTestEnv(t)
	leader := testutil.CreateUser(t, env.db, "leader@example.com")
	advisor := testutil.CreateUser(t, env.db, "advisor@example.com")
	testutil.CreateTeam(t, env.db, "Zona 1", leader)

	for _, payload := range []map[string]string{
		{"p_name": "Zona 1", "p_password": "wrong"},
		{"p_name": "Zona 2", "p_password": "secret"},
	} {
		c, w := teamTestContext(t, http.MethodPost, "/api/rpc/join_team", payload, advisor)
		env.rpcHandler.JoinTeam(c)

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "invalid team name or password")
	}
}

func TestTeamHandler_ListTeams(t *testing.T) {
	env := setupTeamTestEnv(t)
	leader := testutil.CreateUser(t, env.db, "leader@example.com")
	testutil.CreateTeam(t, env.db, "Zona 1", leader)

	c, w := teamTestContext(t, http.MethodGet, "/api/teams", nil, leader)
	env.handler.ListTeams(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.TeamWithRoleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	teams := response["teams"]
	require.Len(t, teams, 1)
	require.Equal(t, "Zona 1", teams[0].TeamDTO.Name)
	require.Equal(t, models.RoleLeader, teams[0].Role)
}

func TestTeamHandler_GetTeam(t *testing.T) {
	env := setupTeamTestEnv(t)
	leader := testutil.CreateUser(t, env.db, "leader@example.com")
	advisor := testutil.CreateUser(t, env.db, "advisor@example.com")
	outsider := testutil.CreateUser(t, env.db, "outsider@example.com")
	team := testutil.CreateTeam(t, env.db, "Zona 1", leader, advisor)

	c, w := teamTestContext(t, http.MethodGet, "/api/teams/"+team.ID, nil, advisor)
	c.Params = gin.Params{{Key: "id", Value: team.ID}}
	env.handler.GetTeam(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.TeamDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.RoleAdvisor, response.YourRole)
	require.Len(t, response.Members, 2)
	require.Equal(t, "leader@example.com", response.Members[0].User.Email)
	require.Equal(t, dto.ProgressDTO{}, response.Progress)

	c, w = teamTestContext(t, http.MethodGet, "/api/teams/"+team.ID, nil, outsider)
	c.Params = gin.Params{{Key: "id", Value: team.ID}}
	env.handler.GetTeam(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
