package s3

import (
	"bytes"
	"context"
	"errors"
	"hotelbook/infras/otel/mocks"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	body, _ := io.ReadAll(params.Body)
	f.puts = append(f.puts, params)
	f.bodies = append(f.bodies, body)

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.deletes = append(f.deletes, params)

	return &s3.DeleteObjectOutput{}, nil
}

func imageHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["images"][0]
}

func TestS3_UploadFile(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newS3(api, "hotelbook", "https://cdn.example.com/", mocks.NewOtel())

	url, err := store.UploadFile(context.Background(), "rooms", imageHeader(t, "Suite.PNG", "image/png", []byte("png-bytes")))
	require.NoError(t, err)

	require.Len(t, api.puts, 1)

	key := aws.ToString(api.puts[0].Key)
	assert.True(t, strings.HasPrefix(key, "rooms/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "hotelbook", aws.ToString(api.puts[0].Bucket))
	assert.Equal(t, "image/png", aws.ToString(api.puts[0].ContentType))
	assert.Equal(t, []byte("png-bytes"), api.bodies[0])
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestS3_UploadFileError(t *testing.T) {
	api := &fakeObjectAPI{err: errors.New("access denied")}
	store := newS3(api, "hotelbook", "https://cdn.example.com", mocks.NewOtel())

	_, err := store.UploadFile(context.Background(), "rooms", imageHeader(t, "a.jpg", "image/jpeg", []byte("x")))
	assert.Error(t, err)
}

func TestS3_DeleteFile(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newS3(api, "hotelbook", "https://cdn.example.com", mocks.NewOtel())

	require.NoError(t, store.DeleteFile(context.Background(), "https://cdn.example.com/rooms/abc.png"))
	require.Len(t, api.deletes, 1)
	assert.Equal(t, "rooms/abc.png", aws.ToString(api.deletes[0].Key))

	err := store.DeleteFile(context.Background(), "https://elsewhere.example.com/rooms/abc.png")
	assert.ErrorIs(t, err, ErrForeignURL)
	assert.Len(t, api.deletes, 1)
}
