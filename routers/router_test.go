package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"genvo-server/idgen"
	"genvo-server/models"
	"genvo-server/repository"
	"genvo-server/routers/api"
	"genvo-server/service"
	"genvo-server/store"
	"genvo-server/videogen"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	inline *service.Inline
	repo   *repository.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithStore(t, store.NewMemory())
}

func newTestServerWithStore(t *testing.T, mem store.Store) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.New(mem, repository.WithIDGenerator(&idgen.Sequence{Prefix: "id"}))
	versions := service.NewVersioning(repo)
	keys := videogen.NewKeys(mem, "")
	client := &videogen.Auto{Keys: keys, Demo: &videogen.Simulator{}, DemoFallback: true}

	gen := service.NewGeneration(repo, versions, client, "")
	inline := service.NewInline(gen)
	gen.SetDispatcher(inline)

	h := api.NewHandler(repo, versions, gen, keys)
	h.TaskPoll = 10 * time.Millisecond
	return &testServer{router: InitRouter(h, nil), inline: inline, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type projectResp struct {
	Project  models.Project  `json:"project"`
	Branches []models.Branch `json:"branches"`
	Task     *models.Task    `json:"task"`
}

func TestListProjectsReturnsSeed(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/v1/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Projects []models.Project `json:"projects"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Projects, 4)
	assert.Equal(t, "Cyberpunk City Flythrough", resp.Projects[0].Title)
}

func TestCreateProjectStartsGeneration(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/api/projects", gin.H{
		"title":    "  ",
		"prompt":   "a lighthouse in a storm",
		"settings": models.GenerationSettings{Duration: 5, AspectRatio: "16:9", Style: "Natural", Model: "Gen-3 Alpha"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created projectResp
	decode(t, w, &created)
	assert.Equal(t, "Untitled Project", created.Project.Title)
	require.NotNil(t, created.Task)
	assert.Equal(t, models.TaskTypeProjectVersion, created.Task.Type)

	s.inline.Wait()

	w = s.do(t, http.MethodGet, "/v1/api/projects/"+created.Project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got projectResp
	decode(t, w, &got)
	assert.Equal(t, models.ProjectStatusCompleted, got.Project.Status)
	require.Len(t, got.Project.Versions, 1)
	assert.Equal(t, models.PlaceholderVideoUrl, got.Project.Versions[0].VideoUrl)
	assert.Equal(t, []models.Branch{}, got.Branches)

	w = s.do(t, http.MethodGet, "/v1/api/tasks/"+created.Task.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var task struct {
		Task models.Task `json:"task"`
	}
	decode(t, w, &task)
	assert.Equal(t, models.TaskStatusSuccess, task.Task.Status)
	assert.Equal(t, 100, task.Task.Progress)
}

func TestCreateProjectWithoutGeneration(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/api/projects", gin.H{"title": "Draft", "prompt": "p", "generate": false})
	require.Equal(t, http.StatusCreated, w.Code)

	var created projectResp
	decode(t, w, &created)
	assert.Nil(t, created.Task)
	assert.Equal(t, models.ProjectStatusGenerating, created.Project.Status)
	assert.Empty(t, created.Project.Versions)
}

func TestProjectNotFound(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodGet, "/v1/api/projects/missing", nil},
		{http.MethodPut, "/v1/api/projects/missing", gin.H{"title": "x"}},
		{http.MethodDelete, "/v1/api/projects/missing", nil},
		{http.MethodPost, "/v1/api/projects/missing/versions", gin.H{"prompt": "x"}},
		{http.MethodPost, "/v1/api/projects/missing/generate", gin.H{"prompt": "x"}},
		{http.MethodPost, "/v1/api/projects/missing/merge", gin.H{"mergedPrompt": "x"}},
		{http.MethodGet, "/v1/api/branches/missing", nil},
		{http.MethodPost, "/v1/api/branches/missing/generate", nil},
		{http.MethodGet, "/v1/api/tasks/missing", nil},
	} {
		w := s.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.method+" "+tc.path)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestUpdateProject(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPut, "/v1/api/projects/2", gin.H{"title": "Ocean Dawn", "isPublic": false})
	require.Equal(t, http.StatusOK, w.Code)

	var resp projectResp
	decode(t, w, &resp)
	assert.Equal(t, "Ocean Dawn", resp.Project.Title)
	assert.False(t, resp.Project.IsPublic)
	assert.Len(t, resp.Project.Versions, 1)

	req := httptest.NewRequest(http.MethodPut, "/v1/api/projects/2", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	bad := httptest.NewRecorder()
	s.router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodDelete, "/v1/api/projects/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/v1/api/projects/1/branches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"branches":[]}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/v1/api/projects/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddVersion(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/api/projects/2/versions", gin.H{
		"prompt":   "sunrise with seagulls",
		"settings": models.GenerationSettings{Duration: 6, AspectRatio: "16:9", Style: "Natural"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Version models.Version `json:"version"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Version.VersionNumber)
	assert.Equal(t, models.PlaceholderThumbnail("Natural"), resp.Version.Thumbnail)
}

func TestBranchLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/api/projects/1/branches", gin.H{"name": "Night Mode", "baseVersionId": "v3", "prompt": "night"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Branch models.Branch `json:"branch"`
	}
	decode(t, w, &created)
	assert.Equal(t, "night-mode", created.Branch.Name)
	assert.Equal(t, models.BranchStatusDraft, created.Branch.Status)

	w = s.do(t, http.MethodPost, "/v1/api/projects/1/branches", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/v1/api/projects/does-not-exist/branches", gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"project not found"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/v1/api/projects/1/branches", nil)
	var list struct {
		Branches []models.Branch `json:"branches"`
	}
	decode(t, w, &list)
	require.Len(t, list.Branches, 5)
	assert.Equal(t, created.Branch.ID, list.Branches[4].ID)

	w = s.do(t, http.MethodPut, "/v1/api/branches/"+created.Branch.ID, gin.H{"prompt": "night rain"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/v1/api/branches/"+created.Branch.ID+"/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var generated struct {
		Branch models.Branch `json:"branch"`
	}
	decode(t, w, &generated)
	assert.Equal(t, models.BranchStatusCompleted, generated.Branch.Status)
	assert.Equal(t, "night rain", generated.Branch.Prompt)
	assert.Equal(t, models.PlaceholderVideoUrl, generated.Branch.VideoUrl)

	w = s.do(t, http.MethodDelete, "/v1/api/branches/"+created.Branch.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/v1/api/branches", nil)
	decode(t, w, &list)
	assert.Len(t, list.Branches, 4)
}

func TestGenerateBranchAsync(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/api/branches/b4/generate?async=true", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		Task models.Task `json:"task"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "b4", resp.Task.BranchId)
	assert.Equal(t, videogen.DefaultModel, resp.Task.Parameters.Model)

	s.inline.Wait()
	b, ok := s.repo.GetBranch(context.Background(), "b4")
	require.True(t, ok)
	assert.Equal(t, models.BranchStatusCompleted, b.Status)
}

func TestMergeBranches(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/api/projects/1/merge", gin.H{
		"sourceBranchId": "b2",
		"targetBranchId": "b3",
		"mergedPrompt":   "blue neon with heavy traffic",
		"settings":       models.GenerationSettings{Duration: 5, AspectRatio: "16:9", Style: "Cinematic"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Version models.Version `json:"version"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 4, resp.Version.VersionNumber)
	assert.Equal(t, "blue neon with heavy traffic", resp.Version.Prompt)
}

func TestDiffAndSuggest(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/v1/api/diff", gin.H{"promptA": "a red car", "promptB": "a blue car"})
	require.Equal(t, http.StatusOK, w.Code)

	var d struct {
		Diff struct {
			Common  []string `json:"common"`
			OnlyInA []string `json:"onlyInA"`
			OnlyInB []string `json:"onlyInB"`
		} `json:"diff"`
		HighlightA []struct {
			Word   string `json:"word"`
			Unique bool   `json:"unique"`
		} `json:"highlightA"`
	}
	decode(t, w, &d)
	assert.Equal(t, []string{"a", "car"}, d.Diff.Common)
	assert.Equal(t, []string{"red"}, d.Diff.OnlyInA)
	assert.Equal(t, []string{"blue"}, d.Diff.OnlyInB)
	require.Len(t, d.HighlightA, 3)
	assert.True(t, d.HighlightA[1].Unique)

	w = s.do(t, http.MethodPost, "/v1/api/merge/suggest", gin.H{
		"promptA":   "a red car",
		"promptB":   "a blue car",
		"settingsA": models.GenerationSettings{Duration: 4, Style: "Cinematic"},
		"settingsB": models.GenerationSettings{Duration: 8, Style: "Neon"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var sg struct {
		AutoMerged string                    `json:"autoMerged"`
		Combined   string                    `json:"combined"`
		Settings   models.GenerationSettings `json:"settings"`
	}
	decode(t, w, &sg)
	assert.Equal(t, "a red car, blue", sg.AutoMerged)
	assert.Equal(t, "a red car blue", sg.Combined)
	assert.Equal(t, 8, sg.Settings.Duration)
	assert.Equal(t, "Cinematic", sg.Settings.Style)
}

func TestExploreDashboardCatalog(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/api/explore?q=tokyo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ex struct {
		Projects []models.Project `json:"projects"`
	}
	decode(t, w, &ex)
	require.Len(t, ex.Projects, 1)
	assert.Equal(t, "c2", ex.Projects[0].ID)

	w = s.do(t, http.MethodGet, "/v1/api/explore?style=Natural&sort=newest", nil)
	decode(t, w, &ex)
	require.Len(t, ex.Projects, 2)
	assert.Equal(t, "c3", ex.Projects[0].ID)

	w = s.do(t, http.MethodGet, "/v1/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		Stats service.DashboardStats `json:"stats"`
	}
	decode(t, w, &dash)
	assert.Equal(t, 4, dash.Stats.TotalProjects)
	assert.Equal(t, 1, dash.Stats.Generating)

	w = s.do(t, http.MethodGet, "/v1/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cat struct {
		Styles      []string         `json:"styles"`
		VideoModels []videogen.Model `json:"videoModels"`
	}
	decode(t, w, &cat)
	assert.Len(t, cat.Styles, 10)
	assert.Len(t, cat.VideoModels, 4)
}

func TestAPIKeySettings(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/api/settings/api-key", nil)
	assert.JSONEq(t, `{"configured":false}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/v1/api/settings/api-key", gin.H{"apiKey": "fal-123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"configured":true}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/v1/api/settings/api-key", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/v1/api/settings/api-key", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"configured":false}`, w.Body.String())
}

func TestAdminResetAndClear(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/v1/api/projects/1", nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/v1/api/admin/reset", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/v1/api/projects/1", nil).Code)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/v1/api/projects/2", nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/v1/api/admin/clear", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/v1/api/projects/2", nil).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", nil).Code)

	w := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestTaskProgressWebSocket(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	w := s.do(t, http.MethodPost, "/v1/api/projects/3/generate", gin.H{"prompt": "swirl"})
	require.Equal(t, http.StatusAccepted, w.Code)
	var resp struct {
		Task models.Task `json:"task"`
	}
	decode(t, w, &resp)
	s.inline.Wait()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/api/tasks/" + resp.Task.ID + "/wss"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var task models.Task
	require.NoError(t, conn.ReadJSON(&task))
	assert.Equal(t, resp.Task.ID, task.ID)
	assert.Equal(t, models.TaskStatusSuccess, task.Status)

	// 终态推送后服务端关闭连接
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)

	missing, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/v1/api/tasks/missing/wss", nil)
	require.NoError(t, err)
	defer missing.Close()
	var msg map[string]string
	require.NoError(t, missing.ReadJSON(&msg))
	assert.Equal(t, "task not found", msg["error"])
}

// taskReadCounter 统计 tasks 集合被读取的次数
type taskReadCounter struct {
	store.Store
	reads int64
}

func (c *taskReadCounter) Read(ctx context.Context, key string) ([]byte, error) {
	if key == repository.KeyTasks {
		atomic.AddInt64(&c.reads, 1)
	}
	return c.Store.Read(ctx, key)
}

func TestTaskWebSocketStopsPollingAfterDisconnect(t *testing.T) {
	counter := &taskReadCounter{Store: store.NewMemory()}
	s := newTestServerWithStore(t, counter)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	// 没有执行器处理，任务一直停留在 pending
	s.repo.CreateTask(context.Background(), &models.Task{ID: "stuck", Status: models.TaskStatusPending})

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/v1/api/tasks/stuck/wss", nil)
	require.NoError(t, err)

	var task models.Task
	require.NoError(t, conn.ReadJSON(&task))
	assert.Equal(t, models.TaskStatusPending, task.Status)

	// 确认服务端已经在轮询
	require.Eventually(t, func() bool { return atomic.LoadInt64(&counter.reads) > 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		before := atomic.LoadInt64(&counter.reads)
		time.Sleep(50 * time.Millisecond)
		return atomic.LoadInt64(&counter.reads) == before
	}, 2*time.Second, 10*time.Millisecond)
}
