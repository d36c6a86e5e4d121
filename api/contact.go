package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mounirtms/showcase/notify"
	"github.com/mounirtms/showcase/service"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	Id      string `json:"id"`
	Relayed bool   `json:"relayed"`
}

// postContact always stores the submission; the SMTP relay is best effort
// and its failure is reported but never loses the message.
func postContact(s service.Servicer, mailer *notify.Mailer) interface{} {
	return func(ctx context.Context, w http.ResponseWriter, input *contactRequest) (*contactResponse, error) {

		name := strings.TrimSpace(input.Name)
		email := strings.TrimSpace(input.Email)
		message := strings.TrimSpace(input.Message)

		if name == "" || email == "" || message == "" {
			w.WriteHeader(http.StatusBadRequest)
			return nil, fmt.Errorf("name, email and message are required")
		}

		stored, err := s.SaveMessage(name, email, message)
		if err != nil {
			return nil, err
		}

		relayed := false
		if mailer != nil {
			err := mailer.SendContact(name, email, message)
			if err != nil {
				fmt.Printf("WARNING: relay contact message: %s\n", err.Error())
			} else {
				relayed = true
			}
		}

		w.WriteHeader(http.StatusCreated)
		id, _ := stored["id"].(string)
		return &contactResponse{
			Id:      id,
			Relayed: relayed,
		}, nil
	}
}
