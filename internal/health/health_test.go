package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckWithoutCache(t *testing.T) {
	status := NewChecker(nil, "v1.0.0").Check(context.Background())

	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, "v1.0.0", status.Version)
	assert.Equal(t, StatusDisabled, status.Checks["plan_cache"].Status)
}

func TestCheckUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	status := NewChecker(client, "dev").Check(context.Background())

	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Equal(t, StatusUnhealthy, status.Checks["plan_cache"].Status)
	assert.NotEmpty(t, status.Checks["plan_cache"].Error)
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health/ready", NewChecker(nil, "dev").ReadyHandler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, StatusHealthy, status.Status)
}

func TestGRPCChecker(t *testing.T) {
	tests := []struct {
		name    string
		checker *Checker
		service string
		want    grpchealth.Status
	}{
		{name: "server wide", checker: NewChecker(nil, "dev"), service: "", want: grpchealth.StatusServing},
		{name: "planner service", checker: NewChecker(nil, "dev"), service: ServiceName, want: grpchealth.StatusServing},
		{name: "unknown service", checker: NewChecker(nil, "dev"), service: "other.Service", want: grpchealth.StatusUnknown},
		{
			name:    "unhealthy cache",
			checker: NewChecker(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}), "dev"),
			service: "",
			want:    grpchealth.StatusNotServing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &grpcChecker{checker: tt.checker}

			resp, err := g.Check(context.Background(), &grpchealth.CheckRequest{Service: tt.service})

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Status)
		})
	}
}

func TestGRPCHandlerPath(t *testing.T) {
	path, handler := NewChecker(nil, "dev").GRPCHandler()

	assert.Equal(t, "/"+grpchealth.HealthV1ServiceName+"/", path)
	assert.NotNil(t, handler)
}
