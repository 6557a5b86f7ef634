package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/server/services"
)

func (s *Server) signup(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := s.users.Signup(c.Request.Context(), in.Email, in.Name, in.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": newUserResponse(user), "token": token})
}

func (s *Server) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		// Uniform rejection: wrong secret and unknown email are both a 400
		// with the same body, so the endpoint cannot be used to enumerate
		// accounts.
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to login"})
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user), "token": token})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.users.Logout(c.Request.Context(), currentUser(c), currentToken(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) logoutAll(c *gin.Context) {
	if err := s.users.LogoutAll(c.Request.Context(), currentUser(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, newUserResponse(currentUser(c)))
}

// updateProfile accepts a partial update of name, email and password. The
// body is decoded loosely first so that unknown fields and wrong value types
// are rejected explicitly instead of silently dropped.
func (s *Server) updateProfile(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch services.ProfilePatch
	for field, value := range raw {
		str, ok := value.(string)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("field %q must be a string", field)})
			return
		}
		switch field {
		case "name":
			patch.Name = &str
		case "email":
			patch.Email = &str
		case "password":
			patch.Secret = &str
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid update field %q", field)})
			return
		}
	}

	updated, err := s.users.UpdateProfile(c.Request.Context(), currentUser(c), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(updated))
}

func (s *Server) deleteAccount(c *gin.Context) {
	user := currentUser(c)
	if err := s.users.DeleteAccount(c.Request.Context(), user); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// uploadAvatar reads the "avatar" multipart field. The request body is
// capped before any buffering happens; the service-side normalizer then
// enforces the exact byte limit and the png/jpeg requirement.
func (s *Server) uploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload+formOverhead)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read avatar"})
		return
	}

	if err := s.users.SetAvatar(c.Request.Context(), currentUser(c), data); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// formOverhead leaves room for multipart boundaries and headers on top of
// the avatar byte cap.
const formOverhead = 16 << 10

func (s *Server) deleteAvatar(c *gin.Context) {
	if err := s.users.DeleteAvatar(c.Request.Context(), currentUser(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// getAvatar serves a user's avatar publicly. The content type is sniffed
// from the stored blob, which the normalizer restricted to png or jpeg.
func (s *Server) getAvatar(c *gin.Context) {
	data, err := s.users.GetAvatar(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
