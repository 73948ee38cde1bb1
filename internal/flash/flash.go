package flash

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Message levels
const (
	LevelInfo  = "info"
	LevelError = "error"
)

const sessionKey = "flash"

// Message is a one-shot notification carried across a redirect.
type Message struct {
	Level string
	Text  string
}

// Info queues an informational message for the next render.
func Info(c *gin.Context, text string) {
	add(c, LevelInfo, text)
}

// Error queues an error message for the next render.
func Error(c *gin.Context, text string) {
	add(c, LevelError, text)
}

func add(c *gin.Context, level, text string) {
	session := sessions.Default(c)
	session.AddFlash(level + "\x00" + text)
	// Save errors here would only drop the notification, not the
	// operation that queued it.
	_ = session.Save()
}

// Take returns the queued messages and clears them.
func Take(c *gin.Context) []Message {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	messages := make([]Message, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		level, text := LevelInfo, s
		for i := 0; i < len(s); i++ {
			if s[i] == 0 {
				level, text = s[:i], s[i+1:]
				break
			}
		}
		messages = append(messages, Message{Level: level, Text: text})
	}
	return messages
}
