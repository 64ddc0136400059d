// Package applog writes one JSON line per notable request event.
package applog

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS         string         `json:"ts"`
	Level      string         `json:"level"`
	ReqID      string         `json:"req_id,omitempty"`
	IP         string         `json:"ip,omitempty"`
	Method     string         `json:"method,omitempty"`
	Path       string         `json:"path,omitempty"`
	Operator   string         `json:"operator,omitempty"`
	Action     string         `json:"action,omitempty"`
	Status     int            `json:"status,omitempty"`
	Err        string         `json:"err,omitempty"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// Now is the clock used for timestamps.
var Now = time.Now

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		if op, ok := c.Locals("username").(string); ok && op != "" {
			e.Operator = op
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }

// Audit records a state change such as a checkout or a catalog write.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
