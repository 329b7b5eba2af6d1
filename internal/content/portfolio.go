package content

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

// Profile is the hero section of the landing page.
type Profile struct {
	Name     string `yaml:"name"`
	Headline string `yaml:"headline"`
	Summary  string `yaml:"summary"`
}

// Project is a portfolio project.
type Project struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Introduction string   `yaml:"introduction"`
	Date         string   `yaml:"date"`
	Period       string   `yaml:"period"`
	StatusTags   []string `yaml:"statusTags"`
	Technologies []string `yaml:"technologies"`
	KeyFeatures  []string `yaml:"keyFeatures"`
	TeamInfo     string   `yaml:"teamInfo"`
	MyRole       string   `yaml:"myRole"`
	Images       []string `yaml:"images"`
	GithubURL    string   `yaml:"githubUrl"`
	LiveURL      string   `yaml:"liveUrl"`
	BlogURL      string   `yaml:"velogUrl"`
	AppStoreURL  string   `yaml:"appStoreUrl"`
	PlayStoreURL string   `yaml:"playStoreUrl"`
}

// Experience is a position held.
type Experience struct {
	ID             string   `yaml:"id"`
	Company        string   `yaml:"company"`
	Role           string   `yaml:"role"`
	StartDate      string   `yaml:"startDate"`
	EndDate        string   `yaml:"endDate"`
	Location       string   `yaml:"location"`
	Introduction   string   `yaml:"introduction"`
	Contributions  []string `yaml:"contributions"`
	Technologies   []string `yaml:"technologies"`
	Tags           []string `yaml:"tags"`
	CompanyLogoURL string   `yaml:"companyLogoUrl"`
}

// Education is a degree or course of study.
type Education struct {
	ID           string `yaml:"id"`
	Institution  string `yaml:"institution"`
	Degree       string `yaml:"degree"`
	FieldOfStudy string `yaml:"fieldOfStudy"`
	StartDate    string `yaml:"startDate"`
	EndDate      string `yaml:"endDate"`
	Location     string `yaml:"location"`
	Description  string `yaml:"description"`
	LogoURL      string `yaml:"logoUrl"`
}

// Activity is a dated entry in the activity timeline.
type Activity struct {
	ID      string `yaml:"id"`
	Date    string `yaml:"date"`
	Title   string `yaml:"title"`
	Details string `yaml:"details"`
}

// Skill is a single skill badge.
type Skill struct {
	Name     string `yaml:"name"`
	IconName string `yaml:"iconName"`
}

// SkillCategory groups skills under a heading.
type SkillCategory struct {
	CategoryName string  `yaml:"categoryName"`
	Skills       []Skill `yaml:"skills"`
}

// Contact is a contact link.
type Contact struct {
	Name       string `yaml:"name"`
	Href       string `yaml:"href"`
	AriaLabel  string `yaml:"ariaLabel"`
	DisplayURL string `yaml:"displayUrl"`
	Username   string `yaml:"username"`
}

// Portfolio is the static content of the landing page.
type Portfolio struct {
	Profile    Profile         `yaml:"profile"`
	Projects   []Project       `yaml:"projects"`
	Experience []Experience    `yaml:"experience"`
	Skills     []SkillCategory `yaml:"skills"`
	Education  []Education     `yaml:"education"`
	Activities []Activity      `yaml:"activities"`
	Contacts   []Contact       `yaml:"contacts"`
}

// Load reads the portfolio from path, or the embedded default when path is
// empty. Projects and experience are sorted newest first.
func Load(path string) (*Portfolio, error) {
	data := defaultPortfolio
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read portfolio %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse decodes portfolio YAML.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio: %w", err)
	}

	sort.SliceStable(p.Projects, func(i, j int) bool {
		return parseDate(p.Projects[i].Date).After(parseDate(p.Projects[j].Date))
	})
	sort.SliceStable(p.Experience, func(i, j int) bool {
		return parseDate(p.Experience[i].StartDate).After(parseDate(p.Experience[j].StartDate))
	})
	return &p, nil
}

// ProjectByID returns the project with the given id.
func (p *Portfolio) ProjectByID(id string) (Project, bool) {
	for _, project := range p.Projects {
		if project.ID == id {
			return project, true
		}
	}
	return Project{}, false
}

// ExperienceByID returns the experience entry with the given id.
func (p *Portfolio) ExperienceByID(id string) (Experience, bool) {
	for _, exp := range p.Experience {
		if exp.ID == id {
			return exp, true
		}
	}
	return Experience{}, false
}

var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// parseDate accepts full dates, year-month and bare years. Anything else
// sorts as the zero time.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
