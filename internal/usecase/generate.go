package usecase

//go:generate mockgen -destination=../store/mocks/repositories.go -package=mocks libraryapi/internal/usecase LoanRepository,BookRepository,UserRepository,ReviewRepository,FavoriteRepository,MessageRepository
