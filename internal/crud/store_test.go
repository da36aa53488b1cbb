package crud

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/internal/confirm"
	"github.com/mesh-intelligence/backoffice/internal/form"
	"github.com/mesh-intelligence/backoffice/internal/notify"
	"github.com/mesh-intelligence/backoffice/internal/validation"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func userSchema() Schema[types.User] {
	return Schema[types.User]{
		Entity:    "user",
		Validator: validation.Users(nil),
		NaturalKeys: []NaturalKey{
			{Field: types.UserDocumentNumber},
			{Field: types.UserPhone},
			{Field: types.UserEmail, Fold: true},
		},
		Decode: func(v types.Values, base types.User) (types.User, error) { return base.Apply(v) },
		Label:  types.User.FullName,
	}
}

func seedUser(id int64, email, phone, doc string) types.User {
	return types.User{
		ID:             id,
		DocumentType:   types.DocumentCC,
		DocumentNumber: doc,
		FirstName:      "Ana",
		LastName:       "Gómez",
		Phone:          phone,
		Email:          email,
		Role:           "Admin",
		Status:         types.StatusActive,
	}
}

func userDraft(email, phone, doc string) types.Values {
	return types.Values{
		types.UserDocumentType:    types.DocumentCC,
		types.UserDocumentNumber:  doc,
		types.UserFirstName:       "Bruno",
		types.UserLastName:        "Díaz",
		types.UserPhone:           phone,
		types.UserEmail:           email,
		types.UserRole:            "Seller",
		types.UserStatus:          types.StatusActive,
		types.UserPassword:        "secret1",
		types.UserConfirmPassword: "secret1",
	}
}

// setupStore creates a user store seeded with one user and a recorder for
// its notifications.
func setupStore(t *testing.T, opts ...Option[types.User]) (*Store[types.User], *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	opts = append([]Option[types.User]{WithNotifier[types.User](rec)}, opts...)
	s, err := New(userSchema(), []types.User{seedUser(1, "a@x.com", "3001111111", "1000001")}, opts...)
	require.NoError(t, err)
	return s, rec
}

func TestCreateAppendsWithNextID(t *testing.T) {
	s, rec := setupStore(t)

	got, err := s.Create(userDraft("b@x.com", "3002222222", "1000002"))
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.ID)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "a@x.com", items[0].Email)
	assert.Equal(t, "b@x.com", items[1].Email)
	assert.NotEmpty(t, items[1].PasswordHash)

	last, _ := rec.Last()
	assert.Equal(t, notify.LevelSuccess, last.Level)
	assert.Equal(t, "User created successfully", last.Message)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	s, rec := setupStore(t)
	before := s.Items()

	_, err := s.Create(userDraft("A@X.com", "3002222222", "1000002"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email is already registered", verr.Field(types.UserEmail))
	assert.Equal(t, []string{types.UserEmail}, verr.Fields())

	after := s.Items()
	require.Len(t, after, 1)
	assert.Same(t, &before[0], &after[0], "a rejected create keeps the same slice")

	last, _ := rec.Last()
	assert.Equal(t, notify.LevelWarning, last.Level)
	assert.Equal(t, "email: email is already registered", last.Message)
}

func TestCreateCollectsAllErrors(t *testing.T) {
	s, _ := setupStore(t)

	draft := userDraft("not-an-email", "3001111111", "1000001")
	draft[types.UserConfirmPassword] = "other"
	_, err := s.Create(draft)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		types.UserDocumentNumber,
		types.UserPhone,
		types.UserEmail,
		types.UserConfirmPassword,
	}, verr.Fields())
	assert.Equal(t, "document_number: document number is already registered", verr.Summary())
	assert.Equal(t, 1, s.Len())
}

func TestCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	s, err := New(userSchema(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.NextID())

	got, err := s.Create(userDraft("b@x.com", "3002222222", "1000002"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestIDsStayUniqueAndIncreasing(t *testing.T) {
	s, err := New(userSchema(), []types.User{
		seedUser(7, "a@x.com", "3001111111", "1000001"),
		seedUser(3, "c@x.com", "3003333333", "1000003"),
	})
	require.NoError(t, err)

	emails := []string{"d@x.com", "e@x.com", "f@x.com"}
	phones := []string{"3004444444", "3005555555", "3006666666"}
	docs := []string{"1000004", "1000005", "1000006"}

	for i := range emails {
		next := s.NextID()
		got, err := s.Create(userDraft(emails[i], phones[i], docs[i]))
		require.NoError(t, err)
		assert.Equal(t, next, got.ID)
		for _, other := range s.Items()[:s.Len()-1] {
			assert.Greater(t, got.ID, other.ID)
		}
	}
	assert.Equal(t, int64(11), s.NextID())

	// A deleted maximum is not reused while a larger id exists.
	ok, err := s.Delete(context.Background(), 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(11), s.NextID())
}

func TestNewRejectsDuplicateSeedIDs(t *testing.T) {
	_, err := New(userSchema(), []types.User{
		seedUser(1, "a@x.com", "3001111111", "1000001"),
		seedUser(1, "b@x.com", "3002222222", "1000002"),
	})
	assert.ErrorIs(t, err, types.ErrDuplicateID)
}

func TestEditChangesOnlyTarget(t *testing.T) {
	s, err := New(userSchema(), []types.User{
		seedUser(1, "a@x.com", "3001111111", "1000001"),
		seedUser(2, "b@x.com", "3002222222", "1000002"),
	})
	require.NoError(t, err)
	before := s.Items()

	got, err := s.Edit(1, types.Values{types.UserPhone: "3009999999"})
	require.NoError(t, err)

	want := before[0]
	want.Phone = "3009999999"
	assert.Equal(t, want, got)

	after := s.Items()
	assert.Equal(t, want, after[0])
	assert.Equal(t, before[1], after[1])
	assert.Equal(t, "3001111111", before[0].Phone, "the previous snapshot is untouched")
}

func TestEditUniquenessIgnoresSelf(t *testing.T) {
	s, err := New(userSchema(), []types.User{
		seedUser(1, "a@x.com", "3001111111", "1000001"),
		seedUser(2, "b@x.com", "3002222222", "1000002"),
	})
	require.NoError(t, err)

	_, err = s.Edit(1, types.Values{types.UserEmail: "a@x.com"})
	require.NoError(t, err, "keeping its own email is not a collision")

	before := s.Items()
	_, err = s.Edit(1, types.Values{types.UserEmail: "b@x.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email is already registered", verr.Field(types.UserEmail))
	assert.Same(t, &before[0], &s.Items()[0])
}

func TestEditUnknownID(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.Edit(42, types.Values{types.UserPhone: "3009999999"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEditPasswordIsOptional(t *testing.T) {
	s, _ := setupStore(t)

	got, err := s.Edit(1, types.Values{types.UserPassword: "newpass", types.UserConfirmPassword: "newpass"})
	require.NoError(t, err)
	assert.NoError(t, got.CheckPassword("newpass"))

	_, err = s.Edit(1, types.Values{types.UserPassword: "another"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password confirmation is required", verr.Field(types.UserConfirmPassword))
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		confirmer confirm.Confirmer
		id        int64
		wantOK    bool
		wantLen   int
	}{
		{name: "confirmed delete removes exactly one", confirmer: confirm.Always(true), id: 1, wantOK: true, wantLen: 1},
		{name: "declined delete keeps the item", confirmer: confirm.Always(false), id: 1, wantLen: 2},
		{name: "unknown id is a no-op", confirmer: confirm.Always(true), id: 99, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(userSchema(), []types.User{
				seedUser(1, "a@x.com", "3001111111", "1000001"),
				seedUser(2, "b@x.com", "3002222222", "1000002"),
			}, WithConfirmer[types.User](tt.confirmer))
			require.NoError(t, err)

			ok, err := s.Delete(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLen, s.Len())
			if tt.wantOK {
				_, err := s.Get(tt.id)
				assert.ErrorIs(t, err, types.ErrNotFound)
			}
		})
	}
}

func TestDeleteAsksWithItemLabel(t *testing.T) {
	var asked string
	rec := notify.NewRecorder()
	c := confirm.NewAsk(func(q string) (string, error) {
		asked = q
		return "y", nil
	}, rec)
	s, _ := setupStore(t, WithConfirmer[types.User](c))

	ok, err := s.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, asked, `user "Ana Gómez"`)

	last, _ := rec.Last()
	assert.Equal(t, "User deleted successfully", last.Message)
}

func TestDeleteOfItemRemovedWhileAsking(t *testing.T) {
	var s *Store[types.User]
	rec := notify.NewRecorder()
	c := confirm.NewAsk(func(string) (string, error) {
		require.NoError(t, s.remove(1))
		return "y", nil
	}, rec)
	s, _ = setupStore(t, WithConfirmer[types.User](c))

	ok, err := s.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestLogRecordsNameEntityOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, _ := setupStore(t, WithLogger[types.User](logger))

	_, err := s.Create(userDraft("b@x.com", "3002222222", "1000002"))
	require.NoError(t, err)
	_, err = s.Create(userDraft("b@x.com", "3002222222", "1000002"))
	require.Error(t, err)
	_, err = s.Delete(context.Background(), 2)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, `"entity":"user"`), line)
	}
}

func TestUIState(t *testing.T) {
	s, _ := setupStore(t)
	assert.Equal(t, UIState{}, s.UI())

	f := s.OpenCreate()
	assert.Equal(t, form.ModeCreate, f.Mode)
	assert.Equal(t, UICreating, s.UI().Mode)

	_, err := s.Create(userDraft("b@x.com", "3002222222", "1000002"))
	require.NoError(t, err)
	assert.Equal(t, UIClosed, s.UI().Mode, "a successful create closes the panel")

	_, err = s.View(1)
	require.NoError(t, err)
	assert.Equal(t, "viewing(1)", s.UI().String())

	ef, err := s.BeginEdit(2)
	require.NoError(t, err)
	assert.Equal(t, UIState{Mode: UIEditing, ID: 2}, s.UI(), "editing replaces viewing")
	assert.Equal(t, "b@x.com", ef.Values[types.UserEmail])

	_, err = s.View(77)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, UIEditing, s.UI().Mode, "a failed view leaves the panel alone")

	s.Close()
	assert.Equal(t, UIClosed, s.UI().Mode)
}

func TestEditFailureKeepsEditPanelOpen(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.BeginEdit(1)
	require.NoError(t, err)

	_, err = s.Edit(1, types.Values{types.UserPhone: "12"})
	require.Error(t, err)
	assert.Equal(t, UIState{Mode: UIEditing, ID: 1}, s.UI())

	_, err = s.Edit(1, types.Values{types.UserPhone: "3007777777"})
	require.NoError(t, err)
	assert.Equal(t, UIClosed, s.UI().Mode)
}

func TestValidateForm(t *testing.T) {
	s, _ := setupStore(t)

	f := s.OpenCreate()
	f.Set(types.UserEmail, "a@x.com")
	require.NoError(t, s.Validate(f))
	assert.Equal(t, "email is already registered", f.Visible()[types.UserEmail])
	assert.NotContains(t, f.Visible(), types.UserPhone, "untouched fields stay quiet")

	ef, err := s.BeginEdit(1)
	require.NoError(t, err)
	require.NoError(t, s.Validate(ef))
	assert.True(t, ef.Valid())

	ef.ID = 99
	assert.ErrorIs(t, s.Validate(ef), types.ErrNotFound)
}
