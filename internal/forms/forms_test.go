package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citysafe/citysafe-go/internal/api"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Message
}

func validAddPost() AddPost {
	return AddPost{
		Text:     "Suspicious activity near the metro entrance",
		Type:     "alert",
		Location: "andheri",
		Tags:     []string{"watch"},
		Images:   1,
	}
}

func TestValidateAddPostAccepts(t *testing.T) {
	assert.NoError(t, ValidateAddPost(validAddPost()))
}

func TestValidateAddPostTextLength(t *testing.T) {
	f := validAddPost()
	f.Text = "too short"
	assert.Equal(t, "enter more than 10 letters", validationMessage(t, ValidateAddPost(f)))

	f.Text = strings.Repeat("x", MaxPostText+1)
	assert.Equal(t, "post text is limited to 500 characters", validationMessage(t, ValidateAddPost(f)))

	// Padding does not rescue a short text.
	f.Text = "   short   " + strings.Repeat(" ", 20)
	assert.Error(t, ValidateAddPost(f))
}

func TestValidateAddPostTagAndImageLimits(t *testing.T) {
	f := validAddPost()
	f.Tags = nil
	assert.Equal(t, "add at least one tag", validationMessage(t, ValidateAddPost(f)))

	f = validAddPost()
	f.Tags = []string{"a", "b", "c", "d", "e", "f"}
	assert.Equal(t, "maximum 5 tags allowed", validationMessage(t, ValidateAddPost(f)))

	f = validAddPost()
	f.Images = 0
	assert.Equal(t, "select at least one image", validationMessage(t, ValidateAddPost(f)))

	f = validAddPost()
	f.Images = MaxImages + 1
	assert.Equal(t, "maximum 5 images allowed", validationMessage(t, ValidateAddPost(f)))
}

func TestValidateAddPostMissingFields(t *testing.T) {
	f := validAddPost()
	f.Location = ""
	assert.Equal(t, "please fill in all required fields", validationMessage(t, ValidateAddPost(f)))
}

func validRegister() Register {
	return Register{
		Name:     "Asha",
		UserID:   "asha_42",
		Email:    "asha@example.com",
		Password: "secret1",
		Confirm:  "secret1",
	}
}

func TestValidateRegisterAccepts(t *testing.T) {
	assert.NoError(t, ValidateRegister(validRegister()))
}

func TestValidateRegisterCanonicalizesUserID(t *testing.T) {
	f := validRegister()
	// Uppercase input passes because the request sends the lowercased form.
	f.UserID = "  ASHA_42  "
	assert.NoError(t, ValidateRegister(f))

	f.UserID = "asha 42"
	assert.Equal(t, "use lowercase letters, numbers and underscore only",
		validationMessage(t, ValidateRegister(f)))
}

func TestValidateRegisterEmail(t *testing.T) {
	for _, bad := range []string{"plainaddress", "a@b", "a b@c.com", "@missing.local"} {
		f := validRegister()
		f.Email = bad
		assert.Equal(t, "please enter a valid email", validationMessage(t, ValidateRegister(f)), bad)
	}
}

func TestValidateRegisterPassword(t *testing.T) {
	f := validRegister()
	f.Password, f.Confirm = "tiny", "tiny"
	assert.Equal(t, "password must be at least 6 characters", validationMessage(t, ValidateRegister(f)))

	f = validRegister()
	f.Confirm = "different1"
	assert.Equal(t, "passwords do not match", validationMessage(t, ValidateRegister(f)))
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin(Login{Email: "a@b.co", Password: "pw"}))

	err := ValidateLogin(Login{Email: "not-an-email", Password: "pw"})
	assert.Equal(t, "please enter a valid email", validationMessage(t, err))

	err = ValidateLogin(Login{Email: "a@b.co"})
	assert.Equal(t, "email and password are required", validationMessage(t, err))
}

func TestValidateEditProfile(t *testing.T) {
	assert.NoError(t, ValidateEditProfile(EditProfile{Name: "Asha", Username: "asha_42"}))

	err := ValidateEditProfile(EditProfile{Name: "Asha", Username: "has space"})
	assert.Equal(t, "use lowercase letters, numbers and underscore only", validationMessage(t, err))

	err = ValidateEditProfile(EditProfile{Username: "asha"})
	assert.Equal(t, "name and username are required", validationMessage(t, err))
}
