// Package fixtures holds the two requirement documents used to exercise
// PDF comparison tools: an original and a revised version with edits on
// both pages.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

// Fixture is a named line list rendered as a two-page document.
type Fixture struct {
	Name  string
	File  string
	Lines []string
}

// FirstPageLines is where the page break falls; every later line goes on
// the second page.
const FirstPageLines = 20

var Original = Fixture{
	Name: "original",
	File: "test_original.pdf",
	Lines: []string{
		"Project Requirements Document",
		"",
		"Version: 1.0",
		"Date: January 15, 2024",
		"",
		"1. Introduction",
		"This document outlines the requirements for the new software system.",
		"",
		"2. System Overview",
		"The system will provide user authentication and data management.",
		"",
		"3. Functional Requirements",
		"- User registration and login",
		"- Password reset functionality",
		"- Profile management",
		"- Data export in CSV format",
		"",
		"4. Technical Requirements",
		"- Database: PostgreSQL 12+",
		"- Backend: Python 3.8+",
		"- Frontend: React 17+",
		"",
		"-------------------- Page 2 --------------------",
		"",
		"5. Security Requirements",
		"- HTTPS encryption required",
		"- Password hashing using bcrypt",
		"- Session timeout after 30 minutes",
		"",
		"6. Performance Requirements",
		"- Page load time under 2 seconds",
		"- Support 1000 concurrent users",
		"",
		"7. Deployment",
		"- Deploy to AWS infrastructure",
		"- Use Docker containers",
		"",
		"8. Timeline",
		"- Phase 1: 3 months",
		"- Phase 2: 2 months",
	},
}

var Modified = Fixture{
	Name: "modified",
	File: "test_modified.pdf",
	Lines: []string{
		"Project Requirements Document",
		"",
		"Version: 2.0",
		"Date: March 20, 2024",
		"",
		"1. Introduction",
		"This document outlines the requirements for the new cloud-based software system.",
		"",
		"2. System Overview",
		"The system will provide user authentication, authorization, and data management.",
		"",
		"3. Functional Requirements",
		"- User registration and login",
		"- Two-factor authentication",
		"- Password reset functionality",
		"- Profile management",
		"- Data export in CSV and JSON formats",
		"",
		"4. Technical Requirements",
		"- Database: PostgreSQL 14+",
		"- Backend: Python 3.11+",
		"- Frontend: React 18+",
		"- API: GraphQL",
		"",
		"-------------------- Page 2 --------------------",
		"",
		"5. Security Requirements",
		"- TLS 1.3 encryption required",
		"- Password hashing using argon2",
		"- Session timeout after 15 minutes",
		"- API rate limiting",
		"",
		"6. Performance Requirements",
		"- Page load time under 1 second",
		"- Support 5000 concurrent users",
		"- 99.9% uptime SLA",
		"",
		"7. Deployment",
		"- Deploy to Azure cloud infrastructure",
		"- Use Kubernetes for orchestration",
		"- Implement CI/CD pipeline",
		"",
		"8. Timeline",
		"- Phase 1: 2 months",
		"- Phase 2: 2 months",
		"- Phase 3: 1 month",
	},
}

// All returns the fixtures in generation order.
func All() []Fixture {
	return []Fixture{Original, Modified}
}

// Document splits the lines at FirstPageLines into exactly two pages.
func (f Fixture) Document() *pdfdoc.Document {
	split := min(FirstPageLines, len(f.Lines))
	doc := pdfdoc.New(pdfdoc.DefaultFont(), pdfdoc.DefaultLayout())
	doc.AddPage(append([]string(nil), f.Lines[:split]...))
	doc.AddPage(append([]string(nil), f.Lines[split:]...))
	return doc
}

// Bytes assembles the fixture.
func (f Fixture) Bytes() ([]byte, error) {
	data, err := pdfdoc.Assemble(f.Document())
	if err != nil {
		return nil, fmt.Errorf("%s fixture: %w", f.Name, err)
	}
	return data, nil
}

// Write assembles every fixture into dir and returns the paths written.
func Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for _, f := range All() {
		data, err := f.Bytes()
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, f.File)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
