package content

import (
	"sort"

	"github.com/abhisek/twotor/internal/apperr"
)

// Catalog indexes immutable course content by id.
type Catalog struct {
	users     map[string]*User
	userOrder []string
	courses   []*Course

	quizzes     map[string]*Quiz
	quizOrder   []string
	lessons     map[string]*Lesson
	lessonOrder []string
}

// NewCatalog builds the quiz and lesson indexes. Later definitions of a
// duplicated quiz or lesson id replace earlier ones.
func NewCatalog(users []User, courses []Course) *Catalog {
	c := &Catalog{
		users:   make(map[string]*User, len(users)),
		quizzes: make(map[string]*Quiz),
		lessons: make(map[string]*Lesson),
	}

	for i := range users {
		u := users[i]
		if _, dup := c.users[u.ID]; !dup {
			c.userOrder = append(c.userOrder, u.ID)
		}
		c.users[u.ID] = &u
	}
	sort.Strings(c.userOrder)

	for i := range courses {
		course := courses[i]
		course.applyDefaults()
		c.courses = append(c.courses, &course)
		for mi := range course.Modules {
			m := &course.Modules[mi]
			for qi := range m.Quizzes {
				q := &m.Quizzes[qi]
				if _, dup := c.quizzes[q.ID]; !dup {
					c.quizOrder = append(c.quizOrder, q.ID)
				}
				c.quizzes[q.ID] = q
			}
			for li := range m.Lessons {
				l := &m.Lessons[li]
				if _, dup := c.lessons[l.ID]; !dup {
					c.lessonOrder = append(c.lessonOrder, l.ID)
				}
				c.lessons[l.ID] = l
			}
		}
	}
	return c
}

// User returns the user with the given id.
func (c *Catalog) User(id string) (*User, error) {
	u, ok := c.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	return u, nil
}

// Quiz returns the quiz with the given id.
func (c *Catalog) Quiz(id string) (*Quiz, error) {
	q, ok := c.quizzes[id]
	if !ok {
		return nil, apperr.NotFound("quiz", id)
	}
	return q, nil
}

// Lesson returns the lesson with the given id.
func (c *Catalog) Lesson(id string) (*Lesson, error) {
	l, ok := c.lessons[id]
	if !ok {
		return nil, apperr.NotFound("lesson", id)
	}
	return l, nil
}

// Users returns every user ordered by id.
func (c *Catalog) Users() []*User {
	out := make([]*User, 0, len(c.userOrder))
	for _, id := range c.userOrder {
		out = append(out, c.users[id])
	}
	return out
}

// Students returns every student ordered by id.
func (c *Catalog) Students() []*User {
	var out []*User
	for _, u := range c.Users() {
		if u.Role == RoleStudent {
			out = append(out, u)
		}
	}
	return out
}

// Courses returns all courses in definition order.
func (c *Catalog) Courses() []*Course {
	return append([]*Course(nil), c.courses...)
}

// CoursesTaughtBy returns the courses whose instructor is the given user.
func (c *Catalog) CoursesTaughtBy(instructorID string) []*Course {
	var out []*Course
	for _, course := range c.courses {
		if course.InstructorID == instructorID {
			out = append(out, course)
		}
	}
	return out
}

// Quizzes returns all quizzes in definition order.
func (c *Catalog) Quizzes() []*Quiz {
	out := make([]*Quiz, 0, len(c.quizOrder))
	for _, id := range c.quizOrder {
		out = append(out, c.quizzes[id])
	}
	return out
}

// Lessons returns all lessons in definition order.
func (c *Catalog) Lessons() []*Lesson {
	out := make([]*Lesson, 0, len(c.lessonOrder))
	for _, id := range c.lessonOrder {
		out = append(out, c.lessons[id])
	}
	return out
}
