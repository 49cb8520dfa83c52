package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberCanSeeCourse(t *testing.T) {
	orgA := uint(1)
	orgB := uint(2)

	published := &model.Course{OrganizationID: orgA, IsPublished: true}
	unpublished := &model.Course{OrganizationID: orgA, IsPublished: false}

	tests := []struct {
		name   string
		claims *util.Claims
		course *model.Course
		want   bool
	}{
		{name: "same org published", claims: &util.Claims{Role: model.Member, OrganizationID: &orgA}, course: published, want: true},
		{name: "other org published", claims: &util.Claims{Role: model.Member, OrganizationID: &orgB}, course: published, want: false},
		{name: "same org unpublished", claims: &util.Claims{Role: model.Member, OrganizationID: &orgA}, course: unpublished, want: false},
		{name: "no organization", claims: &util.Claims{Role: model.Member}, course: published, want: false},
		{name: "nil claims", claims: nil, course: published, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memberCanSeeCourse(tt.claims, tt.course))
		})
	}
}
