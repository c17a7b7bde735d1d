package middleware

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour

	idempotencyReplayHeader = "X-Idempotency-Replayed"
)

// bodyRecorder tees the response body so it can be stored
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a staff member retries a
// mutating request with the same Idempotency-Key. The key is reserved
// before the handler runs, so a retry that arrives while the first request
// is still running gets a 409 instead of running twice. Only 2xx and 4xx
// responses are kept; after a server error the key is released and the
// request may be retried for real. Requests without a key, or without an
// authenticated staff member, pass through.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		value, exists := c.Get(ContextStaffID)
		if !exists {
			c.Next()
			return
		}
		staffID, ok := value.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.FullPath()
		reserved := &entity.IdempotencyKey{
			Key:       key,
			StaffID:   staffID,
			Endpoint:  endpoint,
			ExpiresAt: time.Now().Add(IdempotencyKeyTTL),
		}
		err := repo.Reserve(c.Request.Context(), reserved)
		if errors.Is(err, repository.ErrDuplicate) {
			answerExisting(c, repo, key, staffID, endpoint)
			return
		}
		if err != nil {
			log.Printf("[idempotency] reserving %q failed: %v", key, err)
			c.Next()
			return
		}

		// the outcome is stored even if the client has gone away
		ctx := context.WithoutCancel(c.Request.Context())
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := repo.Release(ctx, reserved.ID); err != nil {
				log.Printf("[idempotency] releasing %q failed: %v", key, err)
			}
		}()

		recorder := &bodyRecorder{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		if err := repo.Complete(ctx, reserved.ID, status, recorder.body.String()); err != nil {
			log.Printf("[idempotency] storing %q failed: %v", key, err)
			return
		}
		completed = true
	}
}

// answerExisting responds to a request whose key is already taken
func answerExisting(c *gin.Context, repo repository.IdempotencyRepository, key string, staffID uuid.UUID, endpoint string) {
	existing, err := repo.GetByKey(c.Request.Context(), key, staffID)
	if err != nil {
		log.Printf("[idempotency] lookup of %q failed: %v", key, err)
		response.ErrorWithCode(c, http.StatusInternalServerError, "Could not check Idempotency-Key")
		c.Abort()
		return
	}

	switch {
	case existing == nil || existing.IsPending():
		// a nil row means the first request just released the key
		response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
	case existing.Endpoint != endpoint:
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
	default:
		c.Header(idempotencyReplayHeader, "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	}
	c.Abort()
}
