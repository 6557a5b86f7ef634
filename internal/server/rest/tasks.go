package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avorobyov/taskkeeper/internal/server/repositories/tasks"
	"github.com/avorobyov/taskkeeper/internal/server/services"
)

func (s *Server) createTask(c *gin.Context) {
	var in struct {
		Description string `json:"description" binding:"required"`
		Completed   bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c), in.Description, in.Completed)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

// listTasks supports ?completed=true|false, ?sortBy=<field>_<asc|desc>,
// ?limit=N and ?skip=N. An unknown sort field or a malformed value is a 400,
// not a silently ignored option.
func (s *Server) listTasks(c *gin.Context) {
	filter, err := parseTaskFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.tasks.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, newTaskResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func parseTaskFilter(c *gin.Context) (tasks.Filter, error) {
	var filter tasks.Filter

	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("invalid completed value %q", v)
		}
		filter.Completed = &b
	}

	if v := c.Query("sortBy"); v != "" {
		field, dir, ok := strings.Cut(v, "_")
		if !ok || (dir != "asc" && dir != "desc") {
			return filter, fmt.Errorf("sortBy must look like <field>_asc or <field>_desc")
		}
		filter.SortBy = field
		filter.Desc = dir == "desc"
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid limit value %q", v)
		}
		filter.Limit = n
	}

	if v := c.Query("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid skip value %q", v)
		}
		filter.Offset = n
	}

	return filter, nil
}

func (s *Server) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// updateTask accepts a partial update of description and completed. Decoded
// loosely so unknown fields and wrong value types are rejected explicitly.
func (s *Server) updateTask(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch services.TaskPatch
	for field, value := range raw {
		switch field {
		case "description":
			str, ok := value.(string)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "description must be a string"})
				return
			}
			patch.Description = &str
		case "completed":
			b, ok := value.(bool)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be a boolean"})
				return
			}
			patch.Completed = &b
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid update field %q", field)})
			return
		}
	}

	task, err := s.tasks.Update(c.Request.Context(), currentUser(c), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) deleteTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), currentUser(c), task.ID); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}
