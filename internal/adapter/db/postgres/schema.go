package postgres

import (
	"time"

	"portfolio-service/internal/domain/portfolio"
)

// CategorySchema represents the database schema for the categories table.
type CategorySchema struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Color string `gorm:"not null" json:"color"`
}

// TableName specifies the table name for the CategorySchema model.
func (CategorySchema) TableName() string { return "categories" }

func (m *CategorySchema) setID(id string) { m.ID = id }

func categoryToModel(c portfolio.Category) CategorySchema {
	return CategorySchema{ID: c.ID, Name: c.Name, Color: c.Color}
}

func categoryToEntity(m CategorySchema) portfolio.Category {
	return portfolio.Category{ID: m.ID, Name: m.Name, Color: m.Color}
}

// ProjectSchema represents the database schema for the projects table.
type ProjectSchema struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	GithubURL   string `gorm:"not null" json:"githubUrl"`
	IDCategory  string `gorm:"not null;index" json:"idCategory"`
}

// TableName specifies the table name for the ProjectSchema model.
func (ProjectSchema) TableName() string { return "projects" }

func (m *ProjectSchema) setID(id string) { m.ID = id }

func projectToModel(p portfolio.Project) ProjectSchema {
	return ProjectSchema{ID: p.ID, Name: p.Name, Description: p.Description, GithubURL: p.GithubURL, IDCategory: p.IDCategory}
}

func projectToEntity(m ProjectSchema) portfolio.Project {
	return portfolio.Project{ID: m.ID, Name: m.Name, Description: m.Description, GithubURL: m.GithubURL, IDCategory: m.IDCategory}
}

// SkillSchema represents the database schema for the skills table.
type SkillSchema struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	IDCategory string `gorm:"not null;index" json:"idCategory"`
}

// TableName specifies the table name for the SkillSchema model.
func (SkillSchema) TableName() string { return "skills" }

func (m *SkillSchema) setID(id string) { m.ID = id }

func skillToModel(s portfolio.Skill) SkillSchema {
	return SkillSchema{ID: s.ID, Name: s.Name, IDCategory: s.IDCategory}
}

func skillToEntity(m SkillSchema) portfolio.Skill {
	return portfolio.Skill{ID: m.ID, Name: m.Name, IDCategory: m.IDCategory}
}

// PostSchema represents the database schema for the posts table.
type PostSchema struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	Slug          string     `gorm:"not null;uniqueIndex" json:"slug"`
	DefaultTitle  string     `gorm:"not null" json:"defaultTitle"`
	PublishedDate *time.Time `json:"publishedDate"`
}

// TableName specifies the table name for the PostSchema model.
func (PostSchema) TableName() string { return "posts" }

func (m *PostSchema) setID(id string) { m.ID = id }

func postToModel(p portfolio.Post) PostSchema {
	return PostSchema{ID: p.ID, Slug: p.Slug, DefaultTitle: p.DefaultTitle, PublishedDate: p.PublishedDate}
}

func postToEntity(m PostSchema) portfolio.Post {
	return portfolio.Post{ID: m.ID, Slug: m.Slug, DefaultTitle: m.DefaultTitle, PublishedDate: m.PublishedDate}
}

// PostContentSchema represents the database schema for the post_contents table.
// A post has at most one content per language.
type PostContentSchema struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	IDPost   string `gorm:"not null;uniqueIndex:idx_post_language" json:"idPost"`
	Language string `gorm:"not null;uniqueIndex:idx_post_language" json:"language"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"not null" json:"content"`
}

// TableName specifies the table name for the PostContentSchema model.
func (PostContentSchema) TableName() string { return "post_contents" }

func (m *PostContentSchema) setID(id string) { m.ID = id }

func postContentToModel(c portfolio.PostContent) PostContentSchema {
	return PostContentSchema{ID: c.ID, IDPost: c.IDPost, Language: string(c.Language), Title: c.Title, Content: c.Content}
}

func postContentToEntity(m PostContentSchema) portfolio.PostContent {
	return portfolio.PostContent{ID: m.ID, IDPost: m.IDPost, Language: portfolio.Language(m.Language), Title: m.Title, Content: m.Content}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;unique" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string { return "users" }

func (m *UserSchema) setID(id string) { m.ID = id }

func userToModel(u portfolio.User) UserSchema {
	return UserSchema{ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password}
}

func userToEntity(m UserSchema) portfolio.User {
	return portfolio.User{ID: m.ID, Name: m.Name, Email: m.Email, Password: m.Password}
}

// Schemas lists every model managed by AutoMigrate.
func Schemas() []any {
	return []any{
		&CategorySchema{},
		&ProjectSchema{},
		&SkillSchema{},
		&PostSchema{},
		&PostContentSchema{},
		&UserSchema{},
	}
}
