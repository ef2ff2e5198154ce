package tmux

import "github.com/stretchr/testify/mock"

// MockClient is a testify mock of Client.
//
//	client := new(MockClient)
//	client.On("SetStatusOption", OptionMode, "flashing").Return(nil)
type MockClient struct {
	mock.Mock
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) HasSession() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) SetStatusOption(name, value string) error {
	args := m.Called(name, value)
	return args.Error(0)
}

func (m *MockClient) Run(args ...string) (string, string, error) {
	called := m.Called(args)
	return called.String(0), called.String(1), called.Error(2)
}
