package goshape

import (
	"strconv"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

type tAddress struct {
	City  string
	Zip   *string
	Floor int
}

type tPerson struct {
	ID      int
	Name    string
	Nick    *string
	Age     int
	Score   float64
	Active  bool
	Born    time.Time
	UID     uuid.UUID
	Tags    []string
	Address *tAddress
}

// tPeople returns people with IDs 1..n, names "p01".."pNN" and ages cycling
// over 20, 30, 40. Every third person has no address, every second has a nick.
func tPeople(n int) []tPerson {
	ret := make([]tPerson, 0, n)
	for i := 1; i <= n; i++ {
		p := tPerson{
			ID:     i,
			Name:   "p" + lo.Ternary(i < 10, "0", "") + strconv.Itoa(i),
			Age:    20 + 10*((i-1)%3),
			Score:  float64(i) / 2,
			Active: i%2 == 0,
			Born:   time.Date(2000, 1, i, 0, 0, 0, 0, time.UTC),
			UID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(i))),
		}
		if i%2 == 0 {
			p.Nick = lo.ToPtr("nick" + strconv.Itoa(i))
		}
		if i%3 != 0 {
			p.Address = &tAddress{City: lo.Ternary(i%2 == 0, "Berlin", "Paris")}
		}
		ret = append(ret, p)
	}

	return ret
}

func ids(people []tPerson) []int {
	return lo.Map(people, func(p tPerson, _ int) int { return p.ID })
}
