package user

import (
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileRequest_Validate(t *testing.T) {
	req := UpdateProfileRequest{
		Name:     "Ahmad Fauzi, S.Pd.I",
		NIP:      "198501012010011001",
		Position: "Guru Ahli Pertama",
		WorkUnit: "MTsN 1 Singkawang",
		OrgUnit:  "Kantor Kementerian Agama Kota Singkawang",
	}
	assert.NoError(t, req.Validate())

	req.NIP = "19850101 201001 1 001"
	assert.NoError(t, req.Validate())

	req.NIP = ""
	assert.NoError(t, req.Validate(), "nip is optional")

	req.NIP = "12345"
	req.Name = ""
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "nip")
	assert.Contains(t, verrs.ToMap(), "name")
}
