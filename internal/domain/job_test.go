package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
)

func TestJobVisibleToStudent(t *testing.T) {
	s1 := primitive.NewObjectID()
	s2 := primitive.NewObjectID()

	t.Run("Draft is invisible regardless of visibility fields", func(t *testing.T) {
		job := domain.Job{IsApproved: false, IsVisibleToAll: true, VisibleTo: []primitive.ObjectID{s1}}
		assert.False(t, job.VisibleToStudent(s1))
	})

	t.Run("Broadcast job is visible to anyone", func(t *testing.T) {
		job := domain.Job{IsApproved: true, IsVisibleToAll: true}
		assert.True(t, job.VisibleToStudent(s1))
		assert.True(t, job.VisibleToStudent(s2))
	})

	t.Run("Targeted job is visible only to the allow-list", func(t *testing.T) {
		job := domain.Job{IsApproved: true, VisibleTo: []primitive.ObjectID{s1}}
		assert.True(t, job.VisibleToStudent(s1))
		assert.False(t, job.VisibleToStudent(s2))
	})

	t.Run("Approved job with empty targeting is visible to no one", func(t *testing.T) {
		job := domain.Job{IsApproved: true}
		assert.False(t, job.VisibleToStudent(s1))
	})
}
