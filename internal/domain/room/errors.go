package room

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrMemberNotFound     = errors.New("member not found in room")
	ErrNotAMember         = errors.New("not a member of this room")
	ErrBanned             = errors.New("banned from this room")
	ErrInsufficientRole   = errors.New("insufficient role")
	ErrAlreadyMember      = errors.New("already a member")
	ErrOwnerCannotLeave   = errors.New("owner cannot leave the room")
	ErrCannotTargetOwner  = errors.New("cannot target the room owner")
	ErrCodeSpaceExhausted = errors.New("room code generation failed")
)
