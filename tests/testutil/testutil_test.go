package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	assert.Equal(t, "postgres", mockDB.DB.Dialector.Name())
	mockDB.ExpectationsWereMet(t)
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, time.Minute)

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestPerform(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusCreated, body)
	})

	w := Perform(t, engine, http.MethodPost, "/echo", map[string]string{"nom": "Alpha"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Alpha", DecodeJSON[map[string]string](t, w)["nom"])
}

func TestAssertError(t *testing.T) {
	engine := gin.New()
	engine.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client 9 not found", "code": "NOT_FOUND"})
	})

	AssertError(t, Perform(t, engine, http.MethodGet, "/missing", nil), http.StatusNotFound, "NOT_FOUND")
}
