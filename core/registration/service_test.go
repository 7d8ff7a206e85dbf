package registration_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/registration"
	inmemdb "github.com/alfurqan/campusreg/storage/database/inmem"
	"github.com/alfurqan/campusreg/tests"
)

func TestService_Create(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()

	main := testutil.CreateCampus(t, s.Campus, "Main", "City A")
	webDev := testutil.CreateCourse(t, s.Course, "Web Dev")

	registration.NowFunc = func() time.Time { return time.Date(2024, 5, 17, 23, 30, 0, 0, time.UTC) }
	defer func() { registration.NowFunc = time.Now }()

	t.Run("stores names and regNo", func(t *testing.T) {
		reg, err := s.Registration.Create(ctx, testutil.NewRegistrationForm("Ali", main.ID, webDev.ID))
		require.NoError(t, err)
		assert.NotEmpty(t, reg.ID)
		assert.True(t, strings.HasPrefix(reg.RegistrationNo, "MAIN-20240517-"), reg.RegistrationNo)
		assert.Equal(t, "Web Dev", reg.Course)
		assert.Equal(t, webDev.ID, reg.CourseID)
		assert.Equal(t, "Main", reg.Campus)
		assert.Equal(t, main.ID, reg.CampusID)
		assert.False(t, reg.CreatedAt.IsZero())

		got, err := s.Registration.GetByRegistrationNo(ctx, reg.RegistrationNo)
		require.NoError(t, err)
		assert.Equal(t, reg, got)
	})

	t.Run("unknown campus", func(t *testing.T) {
		_, err := s.Registration.Create(ctx, testutil.NewRegistrationForm("Ali", "lol", webDev.ID))
		var verr *core.ValidationError
		require.True(t, errors.As(err, &verr), "error = %v", err)
		assert.Equal(t, "campus_id", verr.Fields[0].Field)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := s.Registration.Create(ctx, testutil.NewRegistrationForm("Ali", main.ID, "lol"))
		var verr *core.ValidationError
		require.True(t, errors.As(err, &verr), "error = %v", err)
		assert.Equal(t, "course_id", verr.Fields[0].Field)
	})
}

func TestService_Preview(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()
	main := testutil.CreateCampus(t, s.Campus, "Main", "City A")

	regNo, err := s.Registration.Preview(ctx, main.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^MAIN-\d{8}-\d{3}$`, regNo)

	_, err = s.Registration.Preview(ctx, "")
	assert.Error(t, err)

	_, err = s.Registration.Preview(ctx, "unknown")
	assert.Error(t, err)

	regs, err := s.Registration.Query(ctx, registration.QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, regs, "preview must not store anything")
}

func TestService_GetByRegistrationNo(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		regNo   string
		wantErr error
	}{
		{name: "blank", regNo: "  ", wantErr: registration.ErrRegNoRequired},
		{name: "unknown", regNo: "MAIN-20240101-123", wantErr: registration.ErrRegNoNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Registration.GetByRegistrationNo(ctx, tt.regNo)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v, wantErr %v", err, tt.wantErr)
		})
	}
}

func TestService_List(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()

	c1 := testutil.CreateCampus(t, s.Campus, "Main", "City A")
	c2 := testutil.CreateCampus(t, s.Campus, "North", "City B")
	web := testutil.CreateCourse(t, s.Course, "Web Dev")
	design := testutil.CreateCourse(t, s.Course, "Graphic Design")

	r1 := testutil.CreateRegistration(t, s.Registration, "Ali", c1.ID, web.ID)
	r2 := testutil.CreateRegistration(t, s.Registration, "Sara", c2.ID, design.ID)
	r3 := testutil.CreateRegistration(t, s.Registration, "Alina", c1.ID, design.ID)

	tests := []struct {
		name   string
		qf     registration.QueryFilter
		filter registration.Filter
		want   []registration.Registration
	}{
		{name: "all", want: []registration.Registration{r1, r2, r3}},
		{name: "campus scope", qf: registration.QueryFilter{CampusID: c1.ID}, want: []registration.Registration{r1, r3}},
		{name: "name", filter: registration.Filter{Name: "ALI"}, want: []registration.Registration{r1, r3}},
		{name: "course in scope", qf: registration.QueryFilter{CampusID: c1.ID}, filter: registration.Filter{Course: "design"}, want: []registration.Registration{r3}},
		{name: "campus filter out of scope", qf: registration.QueryFilter{CampusID: c1.ID}, filter: registration.Filter{Campus: c2.ID}, want: []registration.Registration{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Registration.List(ctx, tt.qf, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()

	main := testutil.CreateCampus(t, s.Campus, "Main", "City A")
	web := testutil.CreateCourse(t, s.Course, "Web Dev")
	design := testutil.CreateCourse(t, s.Course, "Graphic Design")
	reg := testutil.CreateRegistration(t, s.Registration, "Ali", main.ID, web.ID)

	var ur registration.UpdateRegistration
	ur.Mobile.SetValid("03009998877")
	ur.CourseID.SetValid(design.ID)
	updated, err := s.Registration.Update(ctx, reg.ID, ur)
	require.NoError(t, err)
	assert.Equal(t, "03009998877", updated.Mobile)
	assert.Equal(t, design.ID, updated.CourseID)
	assert.Equal(t, "Graphic Design", updated.Course)
	assert.Equal(t, reg.RegistrationNo, updated.RegistrationNo)
	assert.Equal(t, reg.CampusID, updated.CampusID)
	assert.Equal(t, reg.Name, updated.Name)

	unchanged, err := s.Registration.Update(ctx, reg.ID, registration.UpdateRegistration{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	var badCourse registration.UpdateRegistration
	badCourse.CourseID.SetValid("lol")
	_, err = s.Registration.Update(ctx, reg.ID, badCourse)
	assert.Error(t, err)

	_, err = s.Registration.Update(ctx, "unknown", ur)
	assert.True(t, core.IsNotFound(err), "error = %v", err)
}

func TestService_Delete(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()

	main := testutil.CreateCampus(t, s.Campus, "Main", "City A")
	web := testutil.CreateCourse(t, s.Course, "Web Dev")
	r1 := testutil.CreateRegistration(t, s.Registration, "Ali", main.ID, web.ID)
	r2 := testutil.CreateRegistration(t, s.Registration, "Sara", main.ID, web.ID)

	require.NoError(t, s.Registration.Delete(ctx, r1.ID))

	regs, err := s.Registration.Query(ctx, registration.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []registration.Registration{r2}, regs)

	err = s.Registration.Delete(ctx, r1.ID)
	assert.True(t, errors.Is(err, registration.ErrNotFound), "error = %v", err)

	err = s.Registration.Delete(ctx, "unknown")
	assert.True(t, errors.Is(err, registration.ErrNotFound), "error = %v", err)

	regs, err = s.Registration.Query(ctx, registration.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestService_NormalizeCourses(t *testing.T) {
	s := testutil.NewServices(t)
	ctx := context.Background()
	repo := inmemdb.NewRegistrationRepository(s.DB)

	main := testutil.CreateCampus(t, s.Campus, "Main", "City A")
	web := testutil.CreateCourse(t, s.Course, "Web Dev")

	legacy, err := repo.CreateRegistration(ctx, registration.Registration{
		RegistrationNo: "MAIN-20230101-123",
		Name:           "Old",
		Course:         web.ID,
		CampusID:       main.ID,
		Campus:         main.Name,
	})
	require.NoError(t, err)
	current := testutil.CreateRegistration(t, s.Registration, "New", main.ID, web.ID)

	n, err := s.Registration.NormalizeCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Registration.GetByID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, "Web Dev", got.Course)
	assert.Equal(t, web.ID, got.CourseID)

	got, err = s.Registration.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, current, got)

	n, err = s.Registration.NormalizeCourses(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
