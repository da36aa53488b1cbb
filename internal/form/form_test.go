package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func TestErrorsOrdering(t *testing.T) {
	errs := Errors{"zeta": "bad", "email": "taken", "phone": "", "alpha": "bad"}
	order := []string{"phone", "email"}

	assert.True(t, errs.HasErrors())
	assert.Equal(t, []string{"email", "alpha", "zeta"}, errs.Fields(order))

	field, msg, ok := errs.First(order)
	assert.True(t, ok)
	assert.Equal(t, "email", field)
	assert.Equal(t, "taken", msg)

	_, _, ok = Errors{"phone": ""}.First(order)
	assert.False(t, ok)
}

func TestStateVisibleOnlyAfterTouch(t *testing.T) {
	s := New(ModeCreate, 0, types.Values{"email": ""})
	s.Errors = Errors{"email": "required", "phone": "required"}

	assert.Empty(t, s.Visible(), "nothing is shown before the user interacts")

	s.Set("email", "a@x")
	assert.Equal(t, Errors{"email": "required"}, s.Visible())

	s.TouchAll([]string{"email", "phone"})
	assert.Len(t, s.Visible(), 2)
	assert.False(t, s.Valid())
}

func TestNewCopiesValues(t *testing.T) {
	values := types.Values{"name": "a"}
	s := New(ModeEdit, 3, values)
	s.Set("name", "b")

	assert.Equal(t, "a", values["name"])
	assert.Equal(t, "edit", s.Mode.String())
	assert.Equal(t, int64(3), s.ID)
}
