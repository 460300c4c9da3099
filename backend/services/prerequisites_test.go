package services

import (
	"context"
	"testing"

	"learnpath/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPrerequisitesNoneRequired(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewPrerequisiteService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	course := testutil.SeedCourse(t, ctx, db, "Intro")

	ok, err := svc.CheckPrerequisites(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPrerequisitesRequiresEveryCourse(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewPrerequisiteService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	js := testutil.SeedCourse(t, ctx, db, "JavaScript")
	html := testutil.SeedCourse(t, ctx, db, "HTML")
	react := testutil.SeedCourse(t, ctx, db, "React")
	testutil.SeedPrerequisite(t, ctx, db, react.ID, js.ID)
	testutil.SeedPrerequisite(t, ctx, db, react.ID, html.ID)

	ok, err := svc.CheckPrerequisites(ctx, user.ID, react.ID)
	require.NoError(t, err)
	assert.False(t, ok, "no enrollments")

	testutil.SeedEnrollment(t, ctx, db, user.ID, js.ID, true)
	testutil.SeedEnrollment(t, ctx, db, user.ID, html.ID, false)

	ok, err = svc.CheckPrerequisites(ctx, user.ID, react.ID)
	require.NoError(t, err)
	assert.False(t, ok, "one prerequisite incomplete")

	require.NoError(t, db.Exec("UPDATE enrollments SET completed = ? WHERE user_id = ? AND course_id = ?", true, user.ID, html.ID).Error)

	ok, err = svc.CheckPrerequisites(ctx, user.ID, react.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPrerequisitesAreNotTransitive(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewPrerequisiteService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	a := testutil.SeedCourse(t, ctx, db, "A")
	b := testutil.SeedCourse(t, ctx, db, "B")
	c := testutil.SeedCourse(t, ctx, db, "C")
	testutil.SeedPrerequisite(t, ctx, db, b.ID, a.ID)
	testutil.SeedPrerequisite(t, ctx, db, c.ID, b.ID)
	testutil.SeedEnrollment(t, ctx, db, user.ID, b.ID, true)

	ok, err := svc.CheckPrerequisites(ctx, user.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanEnrollUnknownUserOrCourse(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewPrerequisiteService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	course := testutil.SeedCourse(t, ctx, db, "Intro")

	_, err := svc.CanEnroll(ctx, 999, course.ID)
	assert.True(t, IsNotFound(err))

	_, err = svc.CanEnroll(ctx, user.ID, 999)
	assert.True(t, IsNotFound(err))
}

func TestCoursePrerequisitesSortedByTitle(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewPrerequisiteService(db, testutil.Logger(t))

	react := testutil.SeedCourse(t, ctx, db, "React")
	js := testutil.SeedCourse(t, ctx, db, "JavaScript")
	css := testutil.SeedCourse(t, ctx, db, "CSS")
	testutil.SeedPrerequisite(t, ctx, db, react.ID, js.ID)
	testutil.SeedPrerequisite(t, ctx, db, react.ID, css.ID)

	courses, err := svc.CoursePrerequisites(ctx, react.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CSS", courses[0].Title)
	assert.Equal(t, "JavaScript", courses[1].Title)

	courses, err = svc.CoursePrerequisites(ctx, css.ID)
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.NotNil(t, courses)
}

func TestAddPrerequisite(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewPrerequisiteService(db, testutil.Logger(t))

	a := testutil.SeedCourse(t, ctx, db, "A")
	b := testutil.SeedCourse(t, ctx, db, "B")
	c := testutil.SeedCourse(t, ctx, db, "C")

	edge, err := svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: b.ID, PrerequisiteCourseID: a.ID})
	require.NoError(t, err)
	assert.NotZero(t, edge.ID)

	_, err = svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: c.ID, PrerequisiteCourseID: b.ID})
	require.NoError(t, err)

	t.Run("duplicate", func(t *testing.T) {
		_, err := svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: b.ID, PrerequisiteCourseID: a.ID})
		assert.True(t, IsConflict(err))
	})

	t.Run("self", func(t *testing.T) {
		_, err := svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: a.ID, PrerequisiteCourseID: a.ID})
		assert.True(t, IsValidation(err))
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: a.ID, PrerequisiteCourseID: c.ID})
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.Contains(t, err.Error(), "cycle")
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: 999, PrerequisiteCourseID: a.ID})
		assert.True(t, IsNotFound(err))
	})

	t.Run("missing prerequisite", func(t *testing.T) {
		_, err := svc.AddPrerequisite(ctx, PrerequisiteInput{CourseID: a.ID, PrerequisiteCourseID: 999})
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "Prerequisite course not found")
	})

	t.Run("zero ids", func(t *testing.T) {
		_, err := svc.AddPrerequisite(ctx, PrerequisiteInput{})
		assert.True(t, IsValidation(err))
	})
}
