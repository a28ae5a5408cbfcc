package routes

import (
	"fmt"
	"net/http"

	"taskpro/api/database"
	"taskpro/api/services"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface, links Linker) {
	tasks := group.Group("/users/:id/tasks")
	{
		tasks.GET("", func(c *gin.Context) { GetTasks(c, db, taskService, links) })
		tasks.POST("", func(c *gin.Context) { CreateTask(c, db, taskService, links) })
		tasks.DELETE("", func(c *gin.Context) { DeleteTasks(c, db, taskService) })

		tasks.GET("/:taskId", func(c *gin.Context) { GetTaskById(c, db, taskService, links) })
		tasks.PATCH("/:taskId", func(c *gin.Context) { UpdateTask(c, db, taskService, links) })
		tasks.DELETE("/:taskId", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	}
}

// taskPathIDs resolves the owner and task ids from the path. Malformed ids
// are reported as the matching not-found error.
func taskPathIDs(c *gin.Context) (uint, uint, error) {
	userID, ok := parseID(c.Param("id"))
	if !ok {
		return 0, 0, services.ErrUserNotFound
	}
	taskID, ok := parseID(c.Param("taskId"))
	if !ok {
		return userID, 0, services.ErrTaskNotFound
	}
	return userID, taskID, nil
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, links Linker) {
	msgs := errorMessages{userNotFound: "Owner not found."}

	userID, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrUserNotFound, msgs)
		return
	}

	tasks, err := taskService.GetTasks(db, userID)
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, links.Tasks(userID, tasks))
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, links Linker) {
	msgs := errorMessages{
		userNotFound: "Cannot assign task to non-existent user.",
		validation:   "Task creation failed.",
	}

	userID, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrUserNotFound, msgs)
		return
	}

	task, err := taskService.CreateTask(db, userID, optionalRequestBody(c))
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusCreated, links.Task(task))
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, links Linker) {
	msgs := errorMessages{}

	userID, taskID, err := taskPathIDs(c)
	if err != nil {
		respondError(c, err, msgs)
		return
	}

	task, err := taskService.GetTaskById(db, userID, taskID)
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, links.Task(task))
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, links Linker) {
	msgs := errorMessages{
		taskNotFound: "Task not found for this user.",
		validation:   "Update failed.",
	}

	userID, taskID, err := taskPathIDs(c)
	if err != nil {
		respondError(c, err, msgs)
		return
	}

	task, err := taskService.UpdateTask(db, userID, taskID, optionalRequestBody(c))
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, links.Task(task))
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	msgs := errorMessages{}

	userID, taskID, err := taskPathIDs(c)
	if err != nil {
		respondError(c, err, msgs)
		return
	}

	if err := taskService.DeleteTask(db, userID, taskID); err != nil {
		respondError(c, err, msgs)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	msgs := errorMessages{
		tooLarge:         "Cannot delete more than 100 tasks at once.",
		notInteger:       "Task IDs must be integers.",
		resourceMismatch: "One or more tasks not found for this user.",
		internal:         "A database error occurred.",
	}

	userID, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, services.ErrUserNotFound, msgs)
		return
	}

	deleted, err := taskService.DeleteTasks(db, userID, optionalRequestBody(c))
	if err != nil {
		respondError(c, err, msgs)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Successfully deleted %d tasks.", deleted)})
}
