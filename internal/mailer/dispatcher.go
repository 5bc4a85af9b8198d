package mailer

import (
	"fmt"
	"net/url"

	"github.com/yogeshrakate/skill-matrix-backend/internal/crypto"
	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
)

const (
	verifySubject = "Email Verification | Skill Matrix"
	resetSubject  = "Password Reset | Skill Matrix"
)

// Dispatcher builds an encrypted link for the recipient and hands the
// rendered message to the Sender. The ciphertext is the sole source of truth
// for the link's email and purpose; the plaintext query parameters exist only
// for the redirect target's convenience.
type Dispatcher struct {
	sender  Sender
	cipher  *crypto.LinkCipher
	baseURL string
}

func NewDispatcher(sender Sender, cipher *crypto.LinkCipher, baseURL string) *Dispatcher {
	return &Dispatcher{sender: sender, cipher: cipher, baseURL: baseURL}
}

// SendLink encrypts {email, purpose} into a link and emails it.
func (d *Dispatcher) SendLink(email string, purpose domain.Purpose) error {
	token, err := d.cipher.EncryptLink(email, purpose)
	if err != nil {
		return err
	}

	forgot := ""
	if purpose == domain.PurposeReset {
		forgot = "true"
	}
	link := fmt.Sprintf("%s/auth/verify-email?token=%s&email=%s&forgot=%s",
		d.baseURL, token, url.QueryEscape(email), forgot)

	subject := verifySubject
	action := "verify the email"
	if purpose == domain.PurposeReset {
		subject = resetSubject
		action = "reset your password"
	}

	body := fmt.Sprintf(`<html>
	<body>
		<p>Email Verification Link
		<br>Click on this link to %s :- <a href="%s">%s</a></p>
	</body>
</html>`, action, link, link)

	return d.sender.Send(email, subject, body)
}
