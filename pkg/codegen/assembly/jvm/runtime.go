package jvm

// runtimeSource implements the builtins. Input is read one line per call from System.in.
const runtimeSource = `.class public Runtime
.super java/lang/Object

.field private static in Ljava/io/BufferedReader;

.method static <clinit>()V
	.limit stack 5
	.limit locals 0
	new java/io/BufferedReader
	dup
	new java/io/InputStreamReader
	dup
	getstatic java/lang/System/in Ljava/io/InputStream;
	invokespecial java/io/InputStreamReader/<init>(Ljava/io/InputStream;)V
	invokespecial java/io/BufferedReader/<init>(Ljava/io/Reader;)V
	putstatic Runtime/in Ljava/io/BufferedReader;
	return
.end method

.method public <init>()V
	aload_0
	invokespecial java/lang/Object/<init>()V
	return
.end method

.method public static printInt(I)V
	.limit stack 2
	.limit locals 1
	getstatic java/lang/System/out Ljava/io/PrintStream;
	iload_0
	invokevirtual java/io/PrintStream/println(I)V
	return
.end method

.method public static printDouble(D)V
	.limit stack 3
	.limit locals 2
	getstatic java/lang/System/out Ljava/io/PrintStream;
	dload_0
	invokevirtual java/io/PrintStream/println(D)V
	return
.end method

.method public static readInt()I
	.limit stack 1
	.limit locals 0
	getstatic Runtime/in Ljava/io/BufferedReader;
	invokevirtual java/io/BufferedReader/readLine()Ljava/lang/String;
	invokevirtual java/lang/String/trim()Ljava/lang/String;
	invokestatic java/lang/Integer/parseInt(Ljava/lang/String;)I
	ireturn
.end method

.method public static readDouble()D
	.limit stack 2
	.limit locals 0
	getstatic Runtime/in Ljava/io/BufferedReader;
	invokevirtual java/io/BufferedReader/readLine()Ljava/lang/String;
	invokevirtual java/lang/String/trim()Ljava/lang/String;
	invokestatic java/lang/Double/parseDouble(Ljava/lang/String;)D
	dreturn
.end method
`
