// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrRevert is an expected rejection of a transition, as opposed to a
// storage or programming fault. The message is the contract's error name
// or require message.
type ErrRevert struct {
	message string
}

// New creates a revert error. Revert errors created by New are usually
// declared as package variables and compared with errors.Is.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

// Newf creates a revert error with a formatted message.
func Newf(format string, args ...any) *ErrRevert {
	return &ErrRevert{message: fmt.Sprintf(format, args...)}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Message returns the revert reason.
func (e *ErrRevert) Message() string {
	return e.message
}

// selector of Error(string)
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// Bytes ABI-encodes the reason as Error(string), the way EVM tooling expects revert data.
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}
	msg := []byte(e.message)
	padded := (len(msg) + 31) / 32 * 32

	encoded := make([]byte, 4+32+32+padded)
	copy(encoded, errorSelector)
	binary.BigEndian.PutUint64(encoded[4+24:], 32)
	binary.BigEndian.PutUint64(encoded[4+32+24:], uint64(len(msg)))
	copy(encoded[4+64:], msg)
	return encoded
}

// IsRevertErr reports whether err is or wraps an ErrRevert.
func IsRevertErr(err error) bool {
	var re *ErrRevert
	return errors.As(err, &re) && re != nil
}

// Reason returns the revert message carried by err, if any.
func Reason(err error) (string, bool) {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re.message, true
	}
	return "", false
}
