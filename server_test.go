package bankline_test

import (
	"bufio"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arhyth/bankline"
	"github.com/arhyth/bankline/mocks"
)

func startTestServer(t *testing.T, svc bankline.Service) (addr string) {
	t.Helper()
	nooplog := zerolog.Nop()
	disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &nooplog)
	srv, err := bankline.NewServer(disp, &nooplog)
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(lis)
	t.Cleanup(srv.Close)

	return lis.Addr().String()
}

func TestServerEnvelope(t *testing.T) {
	t.Run("successful operation travels under OK", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		svc.EXPECT().
			Consult(gomock.Any(), bankline.ConsultQuery{AccountID: 42}).
			Return(bankline.ConsultResponse{Balance: decimal.NewFromInt(500)})

		addr := startTestServer(tt, svc)
		conn, err := net.Dial("tcp", addr)
		reqrd.NoError(err)
		defer conn.Close()

		_, err = conn.Write([]byte(`CONSULT {"account_id":42}` + "\n"))
		reqrd.NoError(err)

		rd := bufio.NewReader(conn)
		line, err := rd.ReadString('\n')
		reqrd.NoError(err)
		reqrd.True(strings.HasPrefix(line, "OK "), line)

		resp := map[string]string{}
		reqrd.NoError(json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "OK ")), &resp))
		as.Equal("500", resp["balance"])
	})

	t.Run("domain KO still travels under OK", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		svc.EXPECT().
			Delete(gomock.Any(), bankline.DeleteQuery{AccountID: 999}).
			Return(bankline.DeleteResponse{Status: bankline.StatusKO})

		addr := startTestServer(tt, svc)
		conn, err := net.Dial("tcp", addr)
		reqrd.NoError(err)
		defer conn.Close()

		_, err = conn.Write([]byte(`DELETE {"account_id":999}` + "\n"))
		reqrd.NoError(err)

		line, err := bufio.NewReader(conn).ReadString('\n')
		reqrd.NoError(err)
		reqrd.True(strings.HasPrefix(line, "OK "), line)
		resp := map[string]string{}
		reqrd.NoError(json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "OK ")), &resp))
		as.Equal("KO", resp["status"])
	})

	t.Run("protocol failures travel under ERR", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)

		addr := startTestServer(tt, svc)
		conn, err := net.Dial("tcp", addr)
		reqrd.NoError(err)
		defer conn.Close()

		rd := bufio.NewReader(conn)
		for msg, want := range map[string]string{
			"GARBAGE":                  "Invalid prefix",
			`DEPOSIT {"account_id":1}`: "Unknown prefix",
			`CONSULT {"account_id":`:   "Unknown format error",
		} {
			_, err = conn.Write([]byte(msg + "\n"))
			reqrd.NoError(err)
			line, err := rd.ReadString('\n')
			reqrd.NoError(err)
			reqrd.True(strings.HasPrefix(line, "ERR "), line)
			resp := map[string]string{}
			reqrd.NoError(json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "ERR ")), &resp))
			as.Equal(want, resp["message"])
		}
	})

	t.Run("BYE closes the session with no reply", func(tt *testing.T) {
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)

		addr := startTestServer(tt, svc)
		conn, err := net.Dial("tcp", addr)
		reqrd.NoError(err)
		defer conn.Close()

		_, err = conn.Write([]byte("BYE\n"))
		reqrd.NoError(err)

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 1)
		_, err = conn.Read(buf)
		reqrd.Error(err, "expected EOF, got data")
	})

	t.Run("one session handles several requests in order", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		bal := decimal.NewFromInt(380)
		gomock.InOrder(
			svc.EXPECT().
				Withdrawal(gomock.Any(), gomock.AssignableToTypeOf(bankline.WithdrawalQuery{})).
				Return(bankline.WithdrawalResponse{Balance: bal}),
			svc.EXPECT().
				Consult(gomock.Any(), bankline.ConsultQuery{AccountID: 42}).
				Return(bankline.ConsultResponse{Balance: bal}),
		)

		addr := startTestServer(tt, svc)
		conn, err := net.Dial("tcp", addr)
		reqrd.NoError(err)
		defer conn.Close()

		rd := bufio.NewReader(conn)
		_, err = conn.Write([]byte(`WITHDRAWAL {"account_id":42,"value":-120}` + "\n" + `CONSULT {"account_id":42}` + "\n"))
		reqrd.NoError(err)

		for i := 0; i < 2; i++ {
			line, err := rd.ReadString('\n')
			reqrd.NoError(err)
			reqrd.True(strings.HasPrefix(line, "OK "), line)
			resp := map[string]string{}
			reqrd.NoError(json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "OK ")), &resp))
			as.Equal("380", resp["balance"])
		}
	})
}
