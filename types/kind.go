/*
 * Copyright 2025 tomoncle.
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

package types

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// ErrorKind tags a failure with the category the HTTP layer reports.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidInput
	KindInternal
	KindResourceUnavailable
	KindBackendUnavailable
)

var _ BaseEnum = KindUnknown

type kindInfo struct {
	name string
	desc string
}

var kindTable = map[ErrorKind]kindInfo{
	KindNotFound:            {"NotFound", "Item not found"},
	KindInvalidInput:        {"InvalidInput", "Invalid request"},
	KindInternal:            {"InternalFailure", "Internal Server Error"},
	KindResourceUnavailable: {"ResourceUnavailable", "Service temporarily unavailable"},
	KindBackendUnavailable:  {"BackendUnavailable", "Service temporarily unavailable"},
}

func (k ErrorKind) IsValid() bool {
	_, ok := kindTable[k]
	return ok
}

func (k ErrorKind) Number() int {
	if !k.IsValid() {
		return IllegalValue
	}
	return int(k)
}

func (k ErrorKind) String() string { return k.Name() }

// Name returns the stable identifier of the kind, e.g. "NotFound".
func (k ErrorKind) Name() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return IllegalName
}

// Desc returns the client-safe message for the kind.
func (k ErrorKind) Desc() string {
	if info, ok := kindTable[k]; ok {
		return info.desc
	}
	return IllegalDesc
}
