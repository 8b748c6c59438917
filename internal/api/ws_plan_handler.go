package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"examprep/internal/auth"
	"examprep/internal/config"
	"examprep/internal/db"
	"examprep/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/datatypes"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadMessage() (int, []byte, error) {
	return s.conn.ReadMessage()
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

// WSPlanHandler streams study plan generation over a websocket. The client
// sends the plan request as the first message and receives {"token": ...}
// frames while the model streams, then {"done": "true", "id": <plan id>}.
// A {"event": "stop"} message cancels generation.
func WSPlanHandler(cfg *config.Config) gin.HandlerFunc {
	gen := plan.NewGenerator(cfg.Planner)
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Missing JWT"}})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		claims, err := auth.ParseJWT(cfg.Server.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid JWT"}})
			return
		}

		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			conn.WriteJSON(map[string]string{"error": "invalid initial payload"})
			return
		}
		var req plan.Request
		if err := json.Unmarshal(msg, &req); err != nil || req.ExamLevel == "" {
			conn.WriteJSON(map[string]string{"error": "invalid plan request"})
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Listen for stop messages from the client
		go func() {
			for {
				_, stopMsg, err := rawConn.ReadMessage()
				if err != nil {
					cancel()
					return
				}
				var ev map[string]interface{}
				if json.Unmarshal(stopMsg, &ev) == nil && ev["event"] == "stop" {
					cancel()
					return
				}
			}
		}()

		doc, err := gen.GenerateStream(ctx, req, func(delta string) {
			conn.WriteJSON(map[string]string{"token": delta})
		})
		if err != nil {
			conn.WriteJSON(map[string]string{"error": "plan generation failed", "detail": err.Error()})
			return
		}

		p := plan.StudyPlan{
			UserID:     claims.UserID,
			ExamLevel:  req.ExamLevel,
			TargetDate: req.TargetDate,
			Prompt:     plan.BuildPrompt(req),
			Document:   datatypes.JSON(doc),
			ModelName:  cfg.Planner.Model,
		}
		if err := db.DB.Create(&p).Error; err != nil {
			log.Printf("failed to save study plan: %v", err)
			conn.WriteJSON(map[string]string{"error": "plan save failed"})
			return
		}
		conn.WriteJSON(map[string]string{"done": "true", "id": p.PublicID})
	}
}
