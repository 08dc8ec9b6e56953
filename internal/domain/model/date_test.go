package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/okian/crm/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDateTime(t *testing.T) {
	convey.Convey("Given the DateTime wire type", t, func() {
		convey.Convey("When decoding an RFC 3339 timestamp with an offset", func() {
			var d model.DateTime
			err := json.Unmarshal([]byte(`"2025-01-01T12:00:00+02:00"`), &d)

			convey.Convey("Then it is converted to UTC", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d.Location(), convey.ShouldEqual, time.UTC)
				convey.So(d.Hour(), convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When decoding a date-time without a zone", func() {
			var d model.DateTime
			err := json.Unmarshal([]byte(`"2025-01-01T10:00:00"`), &d)

			convey.Convey("Then it is read as UTC", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When decoding fractional seconds without a zone", func() {
			var d model.DateTime
			convey.So(json.Unmarshal([]byte(`"2025-01-01T10:00:00.250"`), &d), convey.ShouldBeNil)
			convey.So(d.Nanosecond(), convey.ShouldEqual, 250000000)
		})

		convey.Convey("When decoding garbage", func() {
			var d model.DateTime
			convey.So(json.Unmarshal([]byte(`"01/01/2025 10:00"`), &d), convey.ShouldNotBeNil)
			convey.So(json.Unmarshal([]byte(`1735725600`), &d), convey.ShouldNotBeNil)
		})

		convey.Convey("When decoding null", func() {
			d := model.NewDateTime(time.Now())
			convey.So(json.Unmarshal([]byte(`null`), &d), convey.ShouldBeNil)
			convey.So(d.IsZero(), convey.ShouldBeTrue)
		})

		convey.Convey("When encoding", func() {
			b, err := json.Marshal(model.NewDateTime(time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*3600))))
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, `"2025-01-01T10:00:00Z"`)
		})
	})
}

func TestContactShape(t *testing.T) {
	convey.Convey("Given a contact", t, func() {
		in := model.ContactIn{
			Firstname:   "Ada",
			Birthday:    civil.Date{Year: 1815, Month: time.December, Day: 10},
			ContactType: model.Ref(0),
		}

		convey.Convey("When encoding it with an id", func() {
			b, err := json.Marshal(in.WithID(3))

			convey.Convey("Then the id and the day are flattened into one object", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldContainSubstring, `"id":3`)
				convey.So(string(b), convey.ShouldContainSubstring, `"birthday":"1815-12-10"`)
				convey.So(string(b), convey.ShouldContainSubstring, `"contact_type":0`)
				convey.So(string(b), convey.ShouldContainSubstring, `"origin":null`)
			})
		})

		convey.Convey("When decoding a birthday that is not a calendar day", func() {
			var c model.ContactIn
			convey.So(json.Unmarshal([]byte(`{"birthday":"17/05/1990"}`), &c), convey.ShouldNotBeNil)
			convey.So(json.Unmarshal([]byte(`{"birthday":"1990-02-30"}`), &c), convey.ShouldNotBeNil)
		})

		convey.Convey("When the day is taken from a stored timestamp", func() {
			d := model.DateOf(time.Date(1815, 12, 10, 23, 30, 0, 0, time.FixedZone("X", -2*3600)))
			convey.So(d.String(), convey.ShouldEqual, "1815-12-11")
		})
	})

	convey.Convey("When encoding a user", t, func() {
		b, err := json.Marshal(model.User{ID: 1, Mail: "a@b.c", Password: "hunter2"})

		convey.Convey("Then the password never leaves the process", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldNotContainSubstring, "hunter2")
		})
	})
}
