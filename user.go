/*
 * Copyright 2024 The asyncflux Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package asyncflux

import "strings"

// Privilege is an access level on a database.
type Privilege string

const (
	// Read allows reading from a database.
	Read Privilege = "READ"
	// Write allows writing to a database.
	Write Privilege = "WRITE"
	// All allows both reading and writing.
	All Privilege = "ALL"
)

// ParsePrivilege parses a privilege name case-insensitively.
func ParsePrivilege(s string) (Privilege, error) {
	p := Privilege(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPrivilege
	}
	return p, nil
}

// Valid reports whether p is one of Read, Write or All.
func (p Privilege) Valid() bool {
	switch p {
	case Read, Write, All:
		return true
	default:
		return false
	}
}

// User is a database user.
type User struct {
	Name  string `yaml:"name"`
	Admin bool   `yaml:"admin"`
}

type userRefKind uint8

const (
	userRefInvalid userRefKind = iota
	userRefName
	userRefUser
)

// UserRef refers to a user either by name or by a User value. Build one with
// Username or UserOf; the zero UserRef is invalid.
type UserRef struct {
	kind userRefKind
	name string
	user User
}

// Username refers to a user by name.
func Username(name string) UserRef {
	return UserRef{kind: userRefName, name: name}
}

// UserOf refers to u.
func UserOf(u User) UserRef {
	return UserRef{kind: userRefUser, user: u}
}

// Name resolves the referenced username.
func (r UserRef) Name() (string, error) {
	switch r.kind {
	case userRefName:
		return r.name, nil
	case userRefUser:
		return r.user.Name, nil
	default:
		return "", ErrInvalidUserRef
	}
}
