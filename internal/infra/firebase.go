// README: Firebase ID token verification for API callers; the tenant claim picks the rate schedule.
package infra

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrNoProjectID = errors.New("firebase project id is required")

// FirebaseToken is the verified subset of an ID token the API cares about.
type FirebaseToken struct {
	UID    string
	Claims map[string]interface{}
}

// Tenant returns the "tenant" custom claim, or "" when the token carries none.
func (t *FirebaseToken) Tenant() string {
	if t == nil {
		return ""
	}
	v, _ := t.Claims["tenant"].(string)
	return v
}

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

type firebaseVerifier struct {
	auth *auth.Client
}

// NewFirebaseVerifier builds a TokenVerifier on the Firebase Admin SDK.
// credentialsFile is optional; application-default credentials are used without it.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	if projectID == "" {
		return nil, ErrNoProjectID
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &firebaseVerifier{auth: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	tok, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &FirebaseToken{UID: tok.UID, Claims: tok.Claims}, nil
}
