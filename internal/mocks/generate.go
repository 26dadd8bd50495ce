package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../platform/kvstore --output platform/kvstore --outpkg kvstoremock --filename store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/lineup --output domain/lineup --outpkg lineupmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CustomRepository --dir ../domain/pop --output domain/pop --outpkg popmock --filename custom_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/settings --output domain/settings --outpkg settingsmock --filename repository_mock.go
