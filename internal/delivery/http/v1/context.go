package v1

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
)

// principalFrom reads the authenticated caller the auth middleware
// stored. Only valid on routes behind AuthMiddleware.
func principalFrom(c *gin.Context) domain.Principal {
	id, _ := c.MustGet(string(domain.KeyUserID)).(primitive.ObjectID)
	role, _ := c.MustGet(string(domain.KeyUserRole)).(domain.Role)
	return domain.Principal{ID: id, Role: role}
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	return id, err == nil
}
