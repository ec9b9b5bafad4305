package mailchimp

import "context"

// UserRole is the access level of an account user.
type UserRole string

const (
	RoleViewer  UserRole = "viewer"
	RoleAuthor  UserRole = "author"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// UserActionResult acknowledges an invite action.
type UserActionResult struct {
	Success bool `json:"success"`
}

// UserInvite is a pending invitation.
type UserInvite struct {
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	SentAt   string   `json:"sent_at"`
	Expiring bool     `json:"expiring"`
	Message  string   `json:"msg"`
}

// UserLogin is an active login on the account.
type UserLogin struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	Avatar      string   `json:"avatar"`
	GlobalUID   int      `json:"global_user_id"`
	DateCreated string   `json:"date_created"`
	LastLogin   string   `json:"last_login"`
}

// UserProfile describes the login that owns the API key.
type UserProfile struct {
	ID         int      `json:"id"`
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	Avatar     string   `json:"avatar"`
	GlobalUID  int      `json:"global_user_id"`
	DCUniqueID string   `json:"dc_unique_id"`
}

// InviteUserOptions are the optional parameters of InviteUser.
type InviteUserOptions struct {
	// Role defaults to viewer.
	Role UserRole
	// Message is added to the invitation email.
	Message string
}

// InviteUser invites a user to the account.
//
// API: POST /users/invite.json
func (c *Client) InviteUser(ctx context.Context, email string, opts *InviteUserOptions) (*UserActionResult, error) {
	if opts == nil {
		opts = &InviteUserOptions{}
	}
	p := params{"email": email, "role": defaultString(string(opts.Role), string(RoleViewer))}
	if opts.Message != "" {
		p["msg"] = opts.Message
	}

	var resp UserActionResult
	if err := c.call(ctx, "users/invite", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InviteResend resends a pending invite.
//
// API: POST /users/invite-resend.json
func (c *Client) InviteResend(ctx context.Context, email string) (*UserActionResult, error) {
	var resp UserActionResult
	if err := c.call(ctx, "users/invite-resend", params{"email": email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InviteRevoke revokes a pending invite.
//
// API: POST /users/invite-revoke.json
func (c *Client) InviteRevoke(ctx context.Context, email string) (*UserActionResult, error) {
	var resp UserActionResult
	if err := c.call(ctx, "users/invite-revoke", params{"email": email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetInvites returns the pending invites.
//
// API: POST /users/invites.json
func (c *Client) GetInvites(ctx context.Context) ([]UserInvite, error) {
	var resp []UserInvite
	if err := c.call(ctx, "users/invites", params{}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLogins returns the users who can log in to the account.
//
// API: POST /users/logins.json
func (c *Client) GetLogins(ctx context.Context) ([]UserLogin, error) {
	var resp []UserLogin
	if err := c.call(ctx, "users/logins", params{}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetUserProfile returns the profile of the API key's user.
//
// API: POST /users/profile.json
func (c *Client) GetUserProfile(ctx context.Context) (*UserProfile, error) {
	var resp UserProfile
	if err := c.call(ctx, "users/profile", params{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
