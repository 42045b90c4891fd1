/*
 * Copyright 2022 CECTC, Inc.
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

package misc

import (
	"fmt"
	"time"
)

const (
	TimeFormat      = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05.999999999"
)

// ZoneOffsetMinutes returns the UTC offset of t in minutes.
func ZoneOffsetMinutes(t time.Time) int16 {
	_, offset := t.Zone()
	return int16(offset / 60)
}

// FixedZone returns a location for an offset in minutes. Offset 0 is UTC.
func FixedZone(minutes int16) *time.Location {
	if minutes == 0 {
		return time.UTC
	}
	sign := '+'
	m := int(minutes)
	if m < 0 {
		sign = '-'
		m = -m
	}
	return time.FixedZone(fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60), int(minutes)*60)
}

// LoadLocation resolves a configured time zone name, defaulting to UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// FormatValue renders t the way the command line client prints it.
func FormatValue(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateFormat)
	}
	if t.Nanosecond() == 0 {
		return t.Format(TimeFormat)
	}
	return t.Format(TimestampFormat)
}
