package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"taskpro/api/database"
	"taskpro/api/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface, links Linker) {
	users := group.Group("/users")
	{
		users.GET("", func(c *gin.Context) { GetUsers(c, db, userService, links) })
		users.POST("", func(c *gin.Context) { CreateUser(c, db, userService, links) })
		users.DELETE("", func(c *gin.Context) { DeleteUsers(c, db, userService) })

		users.GET("/:id", func(c *gin.Context) { GetUserById(c, db, userService, links) })
		users.PATCH("/:id", func(c *gin.Context) { UpdateUser(c, db, userService, links) })
		users.DELETE("/:id", func(c *gin.Context) { DeleteUser(c, db, userService) })
	}
}

// parseID accepts positive decimal ids only.
func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 63)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func GetUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface, links Linker) {
	users, err := userService.GetUsers(db)
	if err != nil {
		respondError(c, err, errorMessages{})
		return
	}
	c.JSON(http.StatusOK, links.Users(users))
}

func CreateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface, links Linker) {
	msgs := errorMessages{
		emptyPayload: "No input data provided.",
		validation:   "Creation failed.",
		conflict:     "Username already exists.",
		internal:     "Server error during registration.",
	}

	payload, err := readPayload(c)
	if err != nil {
		respondError(c, err, msgs)
		return
	}

	user, err := userService.CreateUser(db, payload)
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusCreated, links.User(user))
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface, links Linker) {
	msgs := errorMessages{
		userNotFound: fmt.Sprintf("User with ID %s does not exist.", c.Param("id")),
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrUserNotFound, msgs)
		return
	}

	user, err := userService.GetUserById(db, id)
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, links.User(user))
}

func UpdateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface, links Linker) {
	msgs := errorMessages{
		userNotFound: "Cannot update non-existent user.",
		emptyPayload: "No data provided for update.",
		validation:   "Invalid data provided.",
		conflict:     "Username is already taken.",
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrUserNotFound, msgs)
		return
	}

	// The body is read by the service, after the user lookup.
	user, err := userService.UpdateUser(db, id, requestBody(c))
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, links.User(user))
}

func DeleteUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	msgs := errorMessages{
		userNotFound: "Cannot delete non-existent user.",
		internal:     "Database error during deletion.",
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrUserNotFound, msgs)
		return
	}

	if err := userService.DeleteUser(db, id); err != nil {
		respondError(c, err, msgs)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	msgs := errorMessages{
		resourceMismatch: "One or more user IDs do not exist.",
	}

	payload, err := readOptionalPayload(c)
	if err != nil {
		respondError(c, err, msgs)
		return
	}

	deleted, err := userService.DeleteUsers(db, payload)
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Successfully deleted %d users.", deleted)})
}
