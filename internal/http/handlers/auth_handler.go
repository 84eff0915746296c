package handlers

import (
	"time"

	"pocketshop/internal/domain"
	"pocketshop/internal/log"
	"pocketshop/internal/services"
	"pocketshop/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, okEmail := validate.Email(body.Email); !okEmail {
		log.Security(c, "auth.login.fail", map[string]any{"email": body.Email, "reason": "bad_format"})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if !validate.Password(body.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": body.Email, "reason": "bad_password_format"})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	u, err := h.Auth.Login(sid, body.Email, body.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": body.Email})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": body.Email})
	return ok(c, fiber.StatusOK, fiber.Map{"user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return ok(c, fiber.StatusOK, nil)
}

// Me returns the session's user, if any.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return fail(c, fiber.StatusUnauthorized, "not logged in")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"user": u})
}
