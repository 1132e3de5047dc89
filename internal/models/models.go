package models

import "strings"

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string at the boundary. Everything past this
// point works with the closed Role type.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleAlumni:
		return RoleAlumni, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type OpportunityType string

const (
	OpportunityFullTime   OpportunityType = "full-time"
	OpportunityPartTime   OpportunityType = "part-time"
	OpportunityInternship OpportunityType = "internship"
	OpportunityContract   OpportunityType = "contract"
)

func ParseOpportunityType(s string) (OpportunityType, bool) {
	switch OpportunityType(strings.ToLower(strings.TrimSpace(s))) {
	case OpportunityFullTime:
		return OpportunityFullTime, true
	case OpportunityPartTime:
		return OpportunityPartTime, true
	case OpportunityInternship:
		return OpportunityInternship, true
	case OpportunityContract:
		return OpportunityContract, true
	}
	return "", false
}

type StoryCategory string

const (
	StoryCareer           StoryCategory = "career"
	StoryEntrepreneurship StoryCategory = "entrepreneurship"
	StoryEducation        StoryCategory = "education"
	StoryPersonal         StoryCategory = "personal"
	StoryIndustry         StoryCategory = "industry"
)

func ParseStoryCategory(s string) (StoryCategory, bool) {
	switch StoryCategory(strings.ToLower(strings.TrimSpace(s))) {
	case StoryCareer:
		return StoryCareer, true
	case StoryEntrepreneurship:
		return StoryEntrepreneurship, true
	case StoryEducation:
		return StoryEducation, true
	case StoryPersonal:
		return StoryPersonal, true
	case StoryIndustry:
		return StoryIndustry, true
	}
	return "", false
}

type ScholarshipApplicationStatus string

const (
	ScholarshipAppSubmitted   ScholarshipApplicationStatus = "submitted"
	ScholarshipAppUnderReview ScholarshipApplicationStatus = "under_review"
	ScholarshipAppApproved    ScholarshipApplicationStatus = "approved"
	ScholarshipAppRejected    ScholarshipApplicationStatus = "rejected"
)

func ParseScholarshipApplicationStatus(s string) (ScholarshipApplicationStatus, bool) {
	switch ScholarshipApplicationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ScholarshipAppSubmitted:
		return ScholarshipAppSubmitted, true
	case ScholarshipAppUnderReview:
		return ScholarshipAppUnderReview, true
	case ScholarshipAppApproved:
		return ScholarshipAppApproved, true
	case ScholarshipAppRejected:
		return ScholarshipAppRejected, true
	}
	return "", false
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ParseDecision accepts the two terminal statuses a mentorship request can be
// resolved to. "pending" is not a decision.
func ParseDecision(s string) (RequestStatus, bool) {
	switch RequestStatus(strings.ToLower(strings.TrimSpace(s))) {
	case RequestAccepted:
		return RequestAccepted, true
	case RequestRejected:
		return RequestRejected, true
	}
	return "", false
}
