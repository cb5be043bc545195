package entity

import (
	"time"
)

// ContactForm is what a site visitor submits. The backend expects the French
// keys nom and sujet.
type ContactForm struct {
	Name    string `json:"nom"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"sujet"`
	Message string `json:"message"`
}

// ContactMessage is a stored contact form as listed in the admin inbox.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// UnmarshalJSON accepts both the French keys the backend stores and the
// English ones, and "_id" for the identifier.
func (m *ContactMessage) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string    `json:"id"`
		MongoID   string    `json:"_id"`
		Name      string    `json:"name"`
		Nom       string    `json:"nom"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		Subject   string    `json:"subject"`
		Sujet     string    `json:"sujet"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"createdAt"`
		Read      bool      `json:"read"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = ContactMessage{
		ID:        firstNonEmpty(aux.ID, aux.MongoID),
		Name:      firstNonEmpty(aux.Name, aux.Nom),
		Email:     aux.Email,
		Phone:     aux.Phone,
		Subject:   firstNonEmpty(aux.Subject, aux.Sujet),
		Message:   aux.Message,
		CreatedAt: aux.CreatedAt,
		Read:      aux.Read,
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
