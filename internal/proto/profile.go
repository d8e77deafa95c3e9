package proto

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Success  bool   `cbor:"success"`
	UserId   string `cbor:"user_id,omitempty"`
	Username string `cbor:"username,omitempty"`
	Email    string `cbor:"email,omitempty"`
	FullName string `cbor:"full_name,omitempty"`
	Message  string `cbor:"message"`
}

func (x *GetProfileResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *GetProfileResponse) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *GetProfileResponse) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

func (x *GetProfileResponse) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *GetProfileResponse) GetFullName() string {
	if x != nil {
		return x.FullName
	}
	return ""
}

func (x *GetProfileResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}
