package portfolio

import "time"

// Category groups projects and skills.
type Category struct {
	ID    string `json:"id" form:"id"`       // ID is the unique identifier for the category
	Name  string `json:"name" form:"name"`   // Name is the display name
	Color string `json:"color" form:"color"` // Color is a hexadecimal color, e.g. #1f6feb
}

func (c Category) GetID() string { return c.ID }

// WithID returns a copy of c carrying id.
func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// Project is a piece of work hosted on GitHub.
type Project struct {
	ID          string `json:"id" form:"id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	GithubURL   string `json:"githubUrl" form:"githubUrl"`
	IDCategory  string `json:"idCategory" form:"idCategory"` // IDCategory references a Category
}

func (p Project) GetID() string { return p.ID }

// WithID returns a copy of p carrying id.
func (p Project) WithID(id string) Project {
	p.ID = id
	return p
}

// Skill is a named ability listed under a category.
type Skill struct {
	ID         string `json:"id" form:"id"`
	Name       string `json:"name" form:"name"`
	IDCategory string `json:"idCategory" form:"idCategory"`
}

func (s Skill) GetID() string { return s.ID }

// WithID returns a copy of s carrying id.
func (s Skill) WithID(id string) Skill {
	s.ID = id
	return s
}

// SkillsByCategory is a category together with its skills.
type SkillsByCategory struct {
	Name   string         `json:"name"`
	Color  string         `json:"color"`
	Skills []SkillSummary `json:"skills"`
}

// SkillSummary is the part of a Skill listed under its category.
type SkillSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post is a blog entry. Its text lives in one PostContent per language.
type Post struct {
	ID            string     `json:"id" form:"id"`
	Slug          string     `json:"slug" form:"slug"`                 // Slug is the url friendly, unique name of the post
	DefaultTitle  string     `json:"defaultTitle" form:"defaultTitle"` // DefaultTitle is shown when no content matches the reader's language
	PublishedDate *time.Time `json:"publishedDate,omitempty" form:"-"` // PublishedDate is set once, on creation
}

func (p Post) GetID() string { return p.ID }

// WithID returns a copy of p carrying id.
func (p Post) WithID(id string) Post {
	p.ID = id
	return p
}

// PostContent is the body of a Post in one language.
type PostContent struct {
	ID       string   `json:"id" form:"id"`
	IDPost   string   `json:"idPost" form:"idPost"` // IDPost references a Post
	Language Language `json:"language" form:"language"`
	Title    string   `json:"title" form:"title"`
	Content  string   `json:"content" form:"content"`
}

func (c PostContent) GetID() string { return c.ID }

// WithID returns a copy of c carrying id.
func (c PostContent) WithID(id string) PostContent {
	c.ID = id
	return c
}

// User is an account allowed to edit the portfolio.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // Password is a bcrypt hash once stored
}

func (u User) GetID() string { return u.ID }

// View returns the user without its password.
func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserView is the public representation of a User.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
