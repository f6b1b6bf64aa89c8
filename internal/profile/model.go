// File: internal/profile/model.go
package profile

// Profile mirrors the document at users/{uid}. All fields are
// free-text strings; the document is created implicitly by the first
// successful update.
type Profile struct {
	Name          string `json:"name" firestore:"name"`
	DateOfBirth   string `json:"date_of_birth" firestore:"dateOfBirth"`
	MobileNumber  string `json:"mobile_number" firestore:"mobileNumber"`
	Gender        string `json:"gender" firestore:"gender"`
	MaritalStatus string `json:"marital_status" firestore:"maritalStatus"`
	Email         string `json:"email" firestore:"email"`
	Address       string `json:"address" firestore:"address"`
}

// UpdateProfileRequest defines the structure for a profile update.
// The whole document is overwritten on success, not patched.
type UpdateProfileRequest struct {
	Name          string `json:"name"`
	DateOfBirth   string `json:"date_of_birth"`
	MobileNumber  string `json:"mobile_number"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// ToProfile converts an update request into the stored document shape.
func (r *UpdateProfileRequest) ToProfile() *Profile {
	return &Profile{
		Name:          r.Name,
		DateOfBirth:   r.DateOfBirth,
		MobileNumber:  r.MobileNumber,
		Gender:        r.Gender,
		MaritalStatus: r.MaritalStatus,
		Email:         r.Email,
		Address:       r.Address,
	}
}
