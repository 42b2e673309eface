package upstream

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ccouzens/dns-packet/internal/dns/domain"
)

// MockCodec implements wire.MessageCodec for testing
type MockCodec struct {
	mock.Mock
}

func (m *MockCodec) EncodeQuery(header domain.Header, question domain.Question) ([]byte, error) {
	args := m.Called(header, question)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCodec) DecodeMessage(data []byte) (domain.Message, error) {
	args := m.Called(data)
	return args.Get(0).(domain.Message), args.Error(1)
}

// MockConn implements net.Conn for testing
type MockConn struct {
	mock.Mock
	readData    []byte
	writeData   []byte
	deadlineErr error
}

func (m *MockConn) Read(b []byte) (n int, err error) {
	args := m.Called(b)
	if m.readData != nil {
		copy(b, m.readData)
		return len(m.readData), args.Error(1)
	}
	return args.Int(0), args.Error(1)
}

func (m *MockConn) Write(b []byte) (n int, err error) {
	args := m.Called(b)
	m.writeData = make([]byte, len(b))
	copy(m.writeData, b)
	return args.Int(0), args.Error(1)
}

func (m *MockConn) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockConn) LocalAddr() net.Addr                { return nil }
func (m *MockConn) RemoteAddr() net.Addr               { return nil }
func (m *MockConn) SetDeadline(t time.Time) error      { return m.deadlineErr }
func (m *MockConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *MockConn) SetWriteDeadline(t time.Time) error { return nil }

func testHeaderAndQuestion() (domain.Header, domain.Question) {
	return domain.NewQueryHeader(12345), domain.Question{
		Name:  "example.com",
		Type:  domain.RRTypeA,
		Class: domain.RRClassIN,
	}
}

func testMessage(id uint16) domain.Message {
	return domain.Message{
		Header: domain.Header{
			ID:       id,
			Response: true,
			QDCount:  0,
			ANCount:  0,
		},
	}
}

func dialTo(conn net.Conn) DialFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		return conn, nil
	}
}

func TestNewClient(t *testing.T) {
	codec := &MockCodec{}

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{
			name: "valid options",
			opts: Options{Address: "1.1.1.1:53", Codec: codec},
		},
		{
			name:    "missing address",
			opts:    Options{Codec: codec},
			wantErr: errAddressRequired,
		},
		{
			name:    "missing codec",
			opts:    Options{Address: "1.1.1.1:53"},
			wantErr: errCodecRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.opts.Address, client.Address())
				assert.Equal(t, 5*time.Second, client.timeout, "default timeout applies")
			}
		})
	}
}

func TestExchangeSuccess(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{0x30, 0x39, 0x01, 0x00}
	responseBytes := []byte{0x30, 0x39, 0x81, 0x80}

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)
	codec.On("DecodeMessage", responseBytes).Return(testMessage(12345), nil)

	conn := &MockConn{readData: responseBytes}
	conn.On("Write", mock.Anything).Return(len(queryBytes), nil)
	conn.On("Read", mock.Anything).Return(len(responseBytes), nil)
	conn.On("Close").Return(nil)

	client, err := NewClient(Options{
		Address: "1.1.1.1:53",
		Codec:   codec,
		Dial:    dialTo(conn),
	})
	assert.NoError(t, err)

	result, err := client.Exchange(context.Background(), header, question)
	assert.NoError(t, err)
	assert.Equal(t, queryBytes, result.QueryBytes)
	assert.Equal(t, responseBytes, result.ResponseBytes)
	assert.Equal(t, uint16(12345), result.Message.Header.ID)
	assert.Equal(t, queryBytes, conn.writeData, "query bytes must hit the wire unchanged")

	codec.AssertExpectations(t)
	conn.AssertExpectations(t)
}

func TestExchangeIDMismatch(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{0x30, 0x39}
	responseBytes := []byte{0xff, 0xff}

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)
	codec.On("DecodeMessage", responseBytes).Return(testMessage(54321), nil)

	conn := &MockConn{readData: responseBytes}
	conn.On("Write", mock.Anything).Return(len(queryBytes), nil)
	conn.On("Read", mock.Anything).Return(len(responseBytes), nil)
	conn.On("Close").Return(nil)

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec, Dial: dialTo(conn)})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transaction ID mismatch")
}

func TestExchangeNotAResponse(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{0x30, 0x39}
	responseBytes := []byte{0x30, 0x39}

	echoed := testMessage(12345)
	echoed.Header.Response = false

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)
	codec.On("DecodeMessage", responseBytes).Return(echoed, nil)

	conn := &MockConn{readData: responseBytes}
	conn.On("Write", mock.Anything).Return(len(queryBytes), nil)
	conn.On("Read", mock.Anything).Return(len(responseBytes), nil)
	conn.On("Close").Return(nil)

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec, Dial: dialTo(conn)})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a response")
}

func TestExchangeEncodeError(t *testing.T) {
	header, question := testHeaderAndQuestion()

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return([]byte(nil), errors.New("bad name"))

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "encode failed")
}

func TestExchangeDialError(t *testing.T) {
	header, question := testHeaderAndQuestion()

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return([]byte{1}, nil)

	client, _ := NewClient(Options{
		Address: "1.1.1.1:53",
		Codec:   codec,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			return nil, errors.New("network unreachable")
		},
	})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestExchangeWriteError(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{1, 2, 3}

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)

	conn := &MockConn{}
	conn.On("Write", mock.Anything).Return(0, errors.New("broken pipe"))
	conn.On("Close").Return(nil)

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec, Dial: dialTo(conn)})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")
}

func TestExchangeSetDeadlineError(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{1, 2, 3}

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)

	conn := &MockConn{deadlineErr: errors.New("use of closed network connection")}
	conn.On("Close").Return(nil)

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec, Dial: dialTo(conn)})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set connection deadline")
}

func TestExchangeReadTimeout(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{1, 2, 3}

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)

	conn := &MockConn{}
	conn.On("Write", mock.Anything).Return(len(queryBytes), nil)
	conn.On("Read", mock.Anything).Return(0, errors.New("i/o timeout"))
	conn.On("Close").Return(nil)

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec, Dial: dialTo(conn)})

	_, err := client.Exchange(context.Background(), header, question)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read failed")
}

func TestExchangeContextCancelled(t *testing.T) {
	header, question := testHeaderAndQuestion()
	queryBytes := []byte{1, 2, 3}

	codec := &MockCodec{}
	codec.On("EncodeQuery", header, question).Return(queryBytes, nil)

	// A connection whose Read blocks until the context is long gone.
	conn := &MockConn{}
	conn.On("Write", mock.Anything).Return(len(queryBytes), nil)
	conn.On("Read", mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(200 * time.Millisecond)
	}).Return(0, errors.New("too late"))
	conn.On("Close").Return(nil)

	client, _ := NewClient(Options{Address: "1.1.1.1:53", Codec: codec, Dial: dialTo(conn)})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Exchange(ctx, header, question)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
