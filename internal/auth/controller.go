package auth

import (
	"sync"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// Controller owns the identity state of one client handle.
//
// State transitions:
//
//	Normal, TemporaryUser, TemporaryAnonymous --SetTemporaryIdentity--> TemporaryUser
//	Normal, TemporaryUser, TemporaryAnonymous --SetTemporaryAnonymous--> TemporaryAnonymous
//	any --ResetIdentity--> Normal
//	Temporary* --AfterCall [ResetAfterNextCall]--> Normal
//
// The mutex keeps the state consistent under concurrent use; it does not
// decide which of several concurrent calls consumes a one-shot override.
type Controller struct {
	mu       sync.Mutex
	username string
	apiKey   string
	state    zendesk.IdentityState
	override string
	policy   zendesk.ResetPolicy
}

// NewController creates a controller in the Normal state.
func NewController(username, apiKey string) *Controller {
	return &Controller{username: username, apiKey: apiKey}
}

// SetAuth replaces the primary credentials. Any active override is kept.
func (c *Controller) SetAuth(username, apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.username = username
	c.apiKey = apiKey
}

// Username returns the primary username.
func (c *Controller) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.username
}

// APIKey returns the API key.
func (c *Controller) APIKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.apiKey
}

// SetTemporaryIdentity authenticates as username until policy ends the override.
// An empty username is the same as ResetIdentity.
func (c *Controller) SetTemporaryIdentity(username string, policy zendesk.ResetPolicy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if username == "" {
		c.resetLocked()

		return
	}

	c.state = zendesk.IdentityTemporaryUser
	c.override = username
	c.policy = policy
}

// SetTemporaryAnonymous drops authentication until policy ends the override.
func (c *Controller) SetTemporaryAnonymous(policy zendesk.ResetPolicy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = zendesk.IdentityTemporaryAnonymous
	c.override = ""
	c.policy = policy
}

// ResetIdentity returns to the primary identity.
func (c *Controller) ResetIdentity() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
}

// AfterCall ends a one-shot override. It must run once per completed call,
// whether the call succeeded or not.
func (c *Controller) AfterCall() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != zendesk.IdentityNormal && c.policy == zendesk.ResetAfterNextCall {
		c.resetLocked()
	}
}

// State returns the current state.
func (c *Controller) State() zendesk.IdentityState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Current returns the identity the next call will use.
func (c *Controller) Current() Identity {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Identity{
		PrimaryUsername:   c.username,
		APIKey:            c.apiKey,
		OverrideUsername:  c.override,
		AnonymousOverride: c.state == zendesk.IdentityTemporaryAnonymous,
		ResetPolicy:       c.policy,
	}
}

func (c *Controller) resetLocked() {
	c.state = zendesk.IdentityNormal
	c.override = ""
	c.policy = zendesk.ResetAfterNextCall
}
