package proto

type RegisterRequest struct {
	Username string `cbor:"username"`
	Password string `cbor:"password"`
}

func (x *RegisterRequest) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

func (x *RegisterRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type RegisterResponse struct {
	Success bool   `cbor:"success"`
	UserId  string `cbor:"user_id,omitempty"`
	Message string `cbor:"message"`
}

func (x *RegisterResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *RegisterResponse) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *RegisterResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

type AuthenticateRequest struct {
	Username string `cbor:"username"`
	Password string `cbor:"password"`
}

func (x *AuthenticateRequest) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

func (x *AuthenticateRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type AuthenticateResponse struct {
	Success bool   `cbor:"success"`
	Token   string `cbor:"token,omitempty"`
	// ExpiresAt is the token expiry in unix seconds.
	ExpiresAt int64  `cbor:"expires_at,omitempty"`
	Message   string `cbor:"message"`
}

func (x *AuthenticateResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *AuthenticateResponse) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}

func (x *AuthenticateResponse) GetExpiresAt() int64 {
	if x != nil {
		return x.ExpiresAt
	}
	return 0
}

func (x *AuthenticateResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

type VerifyTokenRequest struct {
	Token string `cbor:"token"`
}

func (x *VerifyTokenRequest) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}

// Reasons reported in VerifyTokenResponse.Reason.
const (
	ReasonExpired        = "expired"
	ReasonMalformed      = "malformed"
	ReasonMissingSubject = "missing_subject"
)

type VerifyTokenResponse struct {
	IsValid  bool   `cbor:"is_valid"`
	UserId   string `cbor:"user_id,omitempty"`
	Username string `cbor:"username,omitempty"`
	Reason   string `cbor:"reason,omitempty"`
	Message  string `cbor:"message,omitempty"`
}

func (x *VerifyTokenResponse) GetIsValid() bool {
	if x != nil {
		return x.IsValid
	}
	return false
}

func (x *VerifyTokenResponse) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *VerifyTokenResponse) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

func (x *VerifyTokenResponse) GetReason() string {
	if x != nil {
		return x.Reason
	}
	return ""
}

func (x *VerifyTokenResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}
