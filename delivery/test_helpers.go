package delivery

import "github.com/stretchr/testify/mock"

// MatchLog creates a custom matcher for log arguments in mocks
func MatchLog(matcher func(Log) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchJob creates a custom matcher for job arguments in mocks
func MatchJob(matcher func(Job) bool) interface{} {
	return mock.MatchedBy(matcher)
}
