package partner

import (
	"strings"
	"testing"

	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientInput() ClientInput {
	return ClientInput{
		Code:       "CLI001",
		Name:       "Dupont SARL",
		Address:    "12 rue des Lilas",
		City:       "Lyon",
		PostalCode: "69003",
		Phone:      "04 72 00 00 00",
		Email:      "contact@dupont.fr",
		LegalForm:  "SARL",
	}
}

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, err := NewClient(validClientInput())

		require.NoError(t, err)
		assert.Equal(t, "CLI001", client.Code)
		assert.Equal(t, "Dupont SARL", client.Name)
		assert.True(t, client.IsNew())
		assert.False(t, client.CreatedAt.IsZero())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		in := validClientInput()
		in.Code = "  CLI002 "
		in.City = " Paris"

		client, err := NewClient(in)

		require.NoError(t, err)
		assert.Equal(t, "CLI002", client.Code)
		assert.Equal(t, "Paris", client.City)
	})

	t.Run("email is optional", func(t *testing.T) {
		in := validClientInput()
		in.Email = ""

		_, err := NewClient(in)
		assert.NoError(t, err)
	})

	t.Run("reports every missing required field", func(t *testing.T) {
		client, err := NewClient(ClientInput{})

		assert.Nil(t, client)
		require.ErrorIs(t, err, shared.ErrValidation)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		fields := make([]string, 0, len(de.Details))
		for _, d := range de.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"code_client", "nom", "adresse", "ville", "code_postal"}, fields)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		in := validClientInput()
		in.Email = "not-an-email"

		_, err := NewClient(in)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("rejects too long code", func(t *testing.T) {
		in := validClientInput()
		in.Code = strings.Repeat("C", 21)

		_, err := NewClient(in)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "code_client")
	})
}
